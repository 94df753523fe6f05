// Package model defines the domain types for the file-echo CLI.
//
// Every value in this package is transient: a UserCommand lives for one loop
// iteration, and a FileTarget only until the file it names has been streamed.
// Nothing is persisted between iterations.
package model

import (
	"fmt"
)

// CommandKind classifies one line of user input.
type CommandKind string

const (
	// CommandExit ends the loop gracefully.
	CommandExit CommandKind = "exit"

	// CommandEmpty is a blank line. The loop re-prompts without doing anything.
	CommandEmpty CommandKind = "empty"

	// CommandPath asks the loop to echo the file named by UserCommand.Path.
	CommandPath CommandKind = "path"
)

// String returns the string representation of CommandKind.
func (k CommandKind) String() string {
	return string(k)
}

// UserCommand is the classified form of one line read from standard input.
type UserCommand struct {
	// Kind is the command variant.
	Kind CommandKind

	// Path holds the trimmed input text. Only set when Kind is CommandPath.
	Path string
}

// ParseCommand classifies an already-trimmed input line. exitWord is the
// literal that ends the loop (normally "exit").
func ParseCommand(text, exitWord string) UserCommand {
	switch {
	case text == exitWord:
		return UserCommand{Kind: CommandExit}
	case text == "":
		return UserCommand{Kind: CommandEmpty}
	default:
		return UserCommand{Kind: CommandPath, Path: text}
	}
}

// FileTarget is a path that, at check time, existed and was a regular file.
// The file may have changed by the time it is opened; see OpenError.
type FileTarget struct {
	// Path is the path exactly as the user typed it (after trimming).
	Path string

	// Size is the file size observed during validation. It is informational
	// only and is never used to bound the read.
	Size int64
}

// State is a node of the echo loop's state machine.
//
//	Prompting → Validating → Streaming → Prompting
//	Prompting / Streaming → Terminated
type State string

const (
	StatePrompting  State = "prompting"
	StateValidating State = "validating"
	StateStreaming  State = "streaming"
	StateTerminated State = "terminated"
)

// String returns the string representation of State.
func (s State) String() string {
	return string(s)
}

// ExitCode defines the process exit codes of the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the user left the loop with the exit command.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error, and is also used when a
	// validated file could not be opened.
	ExitGeneralError ExitCode = 1

	// ExitInputError indicates standard input could not be read.
	ExitInputError ExitCode = 2

	// ExitConfigError indicates an invalid config file or flag value.
	ExitConfigError ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
