package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultPrompt is printed before every read from standard input.
const DefaultPrompt = "Path of the file to echo:"

// DefaultExitCommand ends the loop.
const DefaultExitCommand = "exit"

// ColorMode controls whether diagnostics on stderr are styled.
type ColorMode string

const (
	// ColorAuto styles diagnostics only when stderr is a terminal.
	ColorAuto ColorMode = "auto"

	// ColorAlways styles diagnostics unconditionally.
	ColorAlways ColorMode = "always"

	// ColorNever disables styling.
	ColorNever ColorMode = "never"
)

// String returns the string representation of ColorMode.
func (m ColorMode) String() string {
	return string(m)
}

// ParseColorMode converts a string to a ColorMode.
// Returns an error if the string does not match any valid mode.
func ParseColorMode(s string) (ColorMode, error) {
	mode := ColorMode(strings.ToLower(s))
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color mode: %q (valid: auto, always, never)", s)
	}
}

// Config holds the tunable parts of the echo loop.
//
// The same struct is decoded from YAML, TOML and JSON/JSONC, so every field
// carries a tag for each format. Fields absent from the file keep their
// Default() values.
type Config struct {
	// Prompt is the line printed before each read.
	Prompt string `yaml:"prompt" toml:"prompt" json:"prompt"`

	// ExitCommand is the literal input that ends the loop.
	ExitCommand string `yaml:"exit_command" toml:"exit_command" json:"exit_command"`

	// EchoPath prints the accepted path before the file contents.
	EchoPath bool `yaml:"echo_path" toml:"echo_path" json:"echo_path"`

	// Color selects diagnostic styling: auto, always or never.
	Color ColorMode `yaml:"color" toml:"color" json:"color"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		Prompt:      DefaultPrompt,
		ExitCommand: DefaultExitCommand,
		EchoPath:    true,
		Color:       ColorAuto,
	}
}

// Load reads the config file at path and returns it merged over Default().
// An empty path returns Default() unchanged.
//
// The format is chosen by file extension:
//   - .yaml, .yml: gopkg.in/yaml.v3
//   - .toml: github.com/pelletier/go-toml/v2
//   - .json, .jsonc: github.com/tidwall/jsonc, then encoding/json
//
// Unknown keys are rejected in every format so that typos surface early.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".json", ".jsonc":
		err = decodeJSON(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config file extension %q (valid: .yaml, .yml, .toml, .json, .jsonc)", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
}

// decodeJSON strips comments and trailing commas before strict decoding.
func decodeJSON(data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Prompt) == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	if c.ExitCommand == "" {
		return fmt.Errorf("exit_command must not be empty")
	}
	// Input is trimmed before classification, so a command containing
	// whitespace could never match.
	if strings.IndexFunc(c.ExitCommand, unicode.IsSpace) >= 0 {
		return fmt.Errorf("exit_command %q must not contain whitespace", c.ExitCommand)
	}
	if _, err := ParseColorMode(c.Color.String()); err != nil {
		return err
	}
	return nil
}
