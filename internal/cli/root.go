// Package cli implements the cobra-based command line for file-echo.
//
// The tool has a single command: the root command itself runs the echo
// loop. This file defines the root command, its flags, the merging of flags
// over the optional config file, and the translation of errors into exit
// codes.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/file-echo/internal/config"
	"github.com/shinji-kodama/file-echo/internal/echo"
	"github.com/shinji-kodama/file-echo/internal/logger"
	"github.com/shinji-kodama/file-echo/internal/model"
)

// Global flag variables. These are bound to cobra persistent flags on the
// root command and also drive how Execute reports a fatal error.
var (
	// jsonOutput renders every diagnostic on stderr as a JSON object.
	jsonOutput bool

	// verbose enables trace output on stderr (see internal/logger).
	verbose bool

	// colorMode is the resolved colour mode, kept so that Execute styles
	// fatal errors the same way the loop styled its diagnostics.
	colorMode = config.ColorAuto
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds the loop-related flag values of the root command.
type rootFlags struct {
	configPath  string // --config: optional YAML/TOML/JSON config file
	prompt      string // --prompt: text printed before each read
	exitCommand string // --exit-command: input that ends the loop
	noEchoPath  bool   // --no-echo-path: don't print the accepted path
	color       string // --color: auto, always or never
}

// NewRootCommand creates and configures the root cobra command.
// Running it starts the interactive loop on the command's stdin/stdout.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "file-echo",
		Short: "Interactively print files line by line",
		Long: `file-echo repeatedly asks for a file path and prints that file's
contents line by line. Type "exit" to quit.

Paths that do not exist or are not regular files are reported on stderr and
the prompt comes back. Lines that are not valid UTF-8 are reported and
skipped.

Examples:
  file-echo
  file-echo --config ~/.config/file-echo.yaml
  file-echo --prompt "file>" --exit-command quit
  file-echo --json 2>diagnostics.jsonl`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// SilenceErrors leaves error output to Execute (text or JSON).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEcho(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Report diagnostics on stderr as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Config file (.yaml, .yml, .toml, .json, .jsonc)")
	rootCmd.Flags().StringVar(&flags.prompt, "prompt", config.DefaultPrompt, "Prompt printed before each read")
	rootCmd.Flags().StringVar(&flags.exitCommand, "exit-command", config.DefaultExitCommand, "Input that ends the loop")
	rootCmd.Flags().BoolVar(&flags.noEchoPath, "no-echo-path", false, "Don't print the accepted path before the file contents")
	rootCmd.Flags().StringVar(&flags.color, "color", string(config.ColorAuto), "Colour diagnostics: auto, always, never")

	// Malformed flags are a configuration problem, not a generic failure.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.WrapCLIError(model.ExitConfigError, "invalid flags", err)
	})

	colorMode = config.ColorAuto
	return rootCmd
}

// runEcho resolves the configuration and runs the loop to completion.
func runEcho(cmd *cobra.Command, flags *rootFlags) error {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(verbose)

	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	colorMode = cfg.Color

	report := echo.NewReporter(cmd.ErrOrStderr(), echo.ReporterOptions{
		JSON:  jsonOutput,
		Color: cfg.Color,
	})
	loop := echo.NewLoop(cmd.InOrStdin(), cmd.OutOrStdout(), report, cfg)
	return loop.Run()
}

// resolveConfig loads the config file, if any, and applies explicitly set
// flags on top of it. Flags left at their defaults never override the file.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, model.WrapCLIError(model.ExitConfigError, "failed to load config", err)
	}
	if flags.configPath != "" {
		logger.Info("Loaded config from %s", flags.configPath)
	}

	fs := cmd.Flags()
	if fs.Changed("prompt") {
		cfg.Prompt = flags.prompt
	}
	if fs.Changed("exit-command") {
		cfg.ExitCommand = flags.exitCommand
	}
	if fs.Changed("no-echo-path") {
		cfg.EchoPath = !flags.noEchoPath
	}
	if fs.Changed("color") {
		mode, err := config.ParseColorMode(flags.color)
		if err != nil {
			return cfg, model.WrapCLIError(model.ExitConfigError, "invalid --color value", err)
		}
		cfg.Color = mode
	}

	if err := cfg.Validate(); err != nil {
		return cfg, model.WrapCLIError(model.ExitConfigError, "invalid configuration", err)
	}

	logger.Debug("prompt=%q exit_command=%q echo_path=%t color=%s",
		cfg.Prompt, cfg.ExitCommand, cfg.EchoPath, cfg.Color)
	return cfg, nil
}

// Execute runs the root command and exits the process with the resulting
// code. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(int(Run(rootCmd)))
}

// Run executes the root command, reports a fatal error if there is one, and
// returns the exit code. CLIError values carry their own exit codes; other
// errors map to ExitGeneralError.
func Run(rootCmd *cobra.Command) model.ExitCode {
	err := rootCmd.Execute()
	if err == nil {
		return model.ExitSuccess
	}

	report := echo.NewReporter(rootCmd.ErrOrStderr(), echo.ReporterOptions{
		JSON:  jsonOutput,
		Color: colorMode,
	})

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		report.Fatal(cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	report.Fatal(err.Error(), nil)
	return model.ExitGeneralError
}
