package fileio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shinji-kodama/file-echo/internal/model"
)

// ErrInvalidUTF8 is the cause carried by a LineReadError for a line that is
// not valid UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// LineStream is a lazy, forward-only sequence of text lines.
//
// Lines are split on "\n"; a "\r" directly before the "\n" is stripped too.
// A final line without a terminator is still returned. There is no limit on
// line length beyond available memory.
type LineStream struct {
	r      *bufio.Reader
	closer io.Closer
	line   int
	done   bool
}

// NewLineStream wraps r. The stream does not close r.
func NewLineStream(r io.Reader) *LineStream {
	return &LineStream{r: bufio.NewReader(r)}
}

// Open opens a validated target for streaming. The caller must Close the
// returned stream.
//
// A failure here means the file changed after Check accepted it, and is
// returned as a *model.OpenError.
func Open(target model.FileTarget) (*LineStream, error) {
	f, err := os.Open(target.Path)
	if err != nil {
		return nil, &model.OpenError{Path: target.Path, Err: err}
	}

	s := NewLineStream(f)
	s.closer = f
	return s, nil
}

// Next returns the next line without its terminator.
//
// It returns io.EOF once the input is exhausted. A line that is not valid
// UTF-8 yields a *model.LineReadError and the stream stays usable. A read
// error from the underlying reader also yields a *model.LineReadError, after
// which the stream is finished and Next returns io.EOF.
func (s *LineStream) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}

	text, err := s.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.done = true
		s.line++
		return "", &model.LineReadError{Line: s.line, Err: err}
	}
	if err != nil {
		s.done = true
		if text == "" {
			return "", io.EOF
		}
	}

	s.line++
	if trimmed, ok := strings.CutSuffix(text, "\n"); ok {
		text = strings.TrimSuffix(trimmed, "\r")
	}

	if !utf8.ValidString(text) {
		return "", &model.LineReadError{Line: s.line, Err: ErrInvalidUTF8}
	}
	return text, nil
}

// Line returns the number of lines consumed so far, including bad ones.
func (s *LineStream) Line() int {
	return s.line
}

// Close releases the underlying file, if the stream owns one.
// It is safe to call more than once.
func (s *LineStream) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
