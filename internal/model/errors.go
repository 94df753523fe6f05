package model

import (
	"errors"
	"fmt"
	"io/fs"
)

// InputError reports that standard input could not be read, including the
// case where it reached end-of-stream without delivering any data. It is
// fatal: the loop stops and the process exits with ExitInputError.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("read stdin: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ValidationReason tells which of the two path checks failed.
type ValidationReason string

const (
	// ReasonNotExist means nothing could be stat'ed at the path.
	ReasonNotExist ValidationReason = "not-exist"

	// ReasonNotRegular means the path names a directory, device, socket or
	// other non-regular entry.
	ReasonNotRegular ValidationReason = "not-regular"
)

// ValidationError is a recoverable rejection of a user-supplied path.
// Its message is the exact text shown to the user.
type ValidationError struct {
	Path   string
	Reason ValidationReason

	// Err is the stat error for ReasonNotExist, nil otherwise.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Reason == ReasonNotRegular {
		return "Path is not a file: " + e.Path
	}
	return "File does not exist: " + e.Path
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LineReadError is a recoverable failure to read or decode one line.
// Line is 1-based.
type LineReadError struct {
	Line int
	Err  error
}

func (e *LineReadError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineReadError) Unwrap() error {
	return e.Err
}

// OpenError reports that a path which passed validation could not be opened,
// typically because it was removed or its permissions changed in between.
// It is fatal.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	// os.Open already names the path; keep it once.
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("error while opening the file '%s': %v", e.Path, cause)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
