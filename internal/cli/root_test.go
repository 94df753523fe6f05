package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/file-echo/internal/logger"
	"github.com/shinji-kodama/file-echo/internal/model"
)

const prompt = "Path of the file to echo:\n"

// execute builds a fresh root command, feeds it stdin and args, and returns
// the exit code together with everything written to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (model.ExitCode, string, string) {
	t.Helper()
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	code := Run(cmd)
	return code, stdout.String(), stderr.String()
}

// writeFile creates a file in a temporary directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRoot_Exit(t *testing.T) {
	code, stdout, stderr := execute(t, "exit\n")

	assert.Equal(t, model.ExitSuccess, code)
	assert.Equal(t, prompt, stdout)
	assert.Empty(t, stderr)
}

func TestRoot_EchoesFile(t *testing.T) {
	path := writeFile(t, "notes.txt", "a\nb\nc\n")

	code, stdout, stderr := execute(t, path+"\nexit\n")

	assert.Equal(t, model.ExitSuccess, code)
	assert.Equal(t, prompt+path+"\na\nb\nc\n"+prompt, stdout)
	assert.Empty(t, stderr)
}

// TestRoot_UnreadableFile covers a path that passes validation but cannot be
// opened: the command fails with the general error code and names the file.
func TestRoot_UnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can open files regardless of mode")
	}

	path := writeFile(t, "locked.txt", "secret\n")
	require.NoError(t, os.Chmod(path, 0))

	code, stdout, stderr := execute(t, path+"\nexit\n")

	assert.Equal(t, model.ExitGeneralError, code)
	assert.Equal(t, prompt+path+"\n", stdout)
	assert.Contains(t, stderr, "validated file could not be opened")
	assert.Contains(t, stderr, "'"+path+"'")
	assert.NotContains(t, stderr, "secret")
}

func TestRoot_ClosedStdin(t *testing.T) {
	code, stdout, stderr := execute(t, "")

	assert.Equal(t, model.ExitInputError, code)
	assert.Equal(t, prompt, stdout)
	assert.Equal(t, "Error: failed to read user input: read stdin: EOF\n", stderr)
}

func TestRoot_ClosedStdinJSON(t *testing.T) {
	code, _, stderr := execute(t, "", "--json")

	assert.Equal(t, model.ExitInputError, code)

	var got struct {
		Error struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stderr), &got))
	assert.Equal(t, "failed to read user input", got.Error.Message)
	assert.Equal(t, "read stdin: EOF", got.Error.Detail)
}

func TestRoot_JSONValidationDiagnostic(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	code, _, stderr := execute(t, missing+"\nexit\n", "--json")

	assert.Equal(t, model.ExitSuccess, code)
	assert.Contains(t, stderr, `"reason":"not-exist"`)
	assert.Contains(t, stderr, `"message":"File does not exist: `+missing+`"`)
}

func TestRoot_FlagsOverrideDefaults(t *testing.T) {
	path := writeFile(t, "notes.txt", "x\n")

	code, stdout, _ := execute(t, path+"\nquit\n",
		"--prompt", "file>", "--exit-command", "quit", "--no-echo-path")

	assert.Equal(t, model.ExitSuccess, code)
	assert.Equal(t, "file>\nx\nfile>\n", stdout)
}

// TestRoot_ConfigFile verifies that the config file is applied and that an
// explicitly set flag wins over it.
func TestRoot_ConfigFile(t *testing.T) {
	path := writeFile(t, "notes.txt", "x\n")
	cfgPath := writeFile(t, "file-echo.yaml", "prompt: \"from file>\"\nexit_command: bye\necho_path: false\n")

	t.Run("config only", func(t *testing.T) {
		code, stdout, _ := execute(t, path+"\nbye\n", "--config", cfgPath)

		assert.Equal(t, model.ExitSuccess, code)
		assert.Equal(t, "from file>\nx\nfrom file>\n", stdout)
	})

	t.Run("flag overrides config", func(t *testing.T) {
		code, stdout, _ := execute(t, "bye\n", "-c", cfgPath, "--prompt", "flag>")

		assert.Equal(t, model.ExitSuccess, code)
		assert.Equal(t, "flag>\n", stdout)
	})
}

func TestRoot_ConfigErrors(t *testing.T) {
	badCfg := writeFile(t, "bad.toml", "colour = \"never\"\n")

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{
			name:   "missing config file",
			args:   []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")},
			errMsg: "failed to load config",
		},
		{
			name:   "unknown config key",
			args:   []string{"--config", badCfg},
			errMsg: "failed to load config",
		},
		{
			name:   "invalid color flag",
			args:   []string{"--color", "rainbow"},
			errMsg: "invalid --color value",
		},
		{
			name:   "empty exit command",
			args:   []string{"--exit-command", ""},
			errMsg: "invalid configuration",
		},
		{
			name:   "unknown flag",
			args:   []string{"--nope"},
			errMsg: "invalid flags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, "exit\n", tt.args...)

			assert.Equal(t, model.ExitConfigError, code)
			assert.Empty(t, stdout, "the loop never starts")
			assert.Contains(t, stderr, tt.errMsg)
		})
	}
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	code, stdout, stderr := execute(t, "exit\n", "notes.txt")

	assert.Equal(t, model.ExitGeneralError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: ")
}

func TestRoot_Verbose(t *testing.T) {
	code, stdout, stderr := execute(t, "exit\n", "--verbose")

	assert.Equal(t, model.ExitSuccess, code)
	assert.Equal(t, prompt, stdout, "verbose output never reaches stdout")
	assert.Contains(t, stderr, "[DEBUG] read exit command")
	assert.Contains(t, stderr, "[DEBUG] state prompting -> terminated")
}

func TestRoot_Version(t *testing.T) {
	code, stdout, _ := execute(t, "", "--version")

	assert.Equal(t, model.ExitSuccess, code)
	assert.Contains(t, stdout, "dev (commit: none, built: unknown)")
}
