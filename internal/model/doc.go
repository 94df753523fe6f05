// Package model defines the domain types and value objects for the
// file-echo CLI.
//
// This package contains pure data structures with no external dependencies:
// the classified user command, the validated file target, the loop states,
// and the error taxonomy (InputError, ValidationError, LineReadError,
// OpenError).
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
