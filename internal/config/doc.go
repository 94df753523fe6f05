// Package config loads the optional file-echo configuration file.
//
// Without a config file the CLI behaves exactly like the classic echo loop:
// the prompt is "Path of the file to echo:", the exit command is "exit", and
// the accepted path is echoed before the file contents. A config file can
// change those defaults and the diagnostic colour mode. Command-line flags
// override config values when set explicitly (see internal/cli).
package config
