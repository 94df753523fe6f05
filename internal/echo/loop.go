package echo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shinji-kodama/file-echo/internal/config"
	"github.com/shinji-kodama/file-echo/internal/fileio"
	"github.com/shinji-kodama/file-echo/internal/logger"
	"github.com/shinji-kodama/file-echo/internal/model"
)

// Loop is the interactive echo loop. It is not safe for concurrent use;
// a single goroutine drives it from start to finish.
type Loop struct {
	in     *bufio.Reader
	out    io.Writer
	report *Reporter
	cfg    config.Config
	state  model.State

	// open is fileio.Open outside of tests.
	open func(model.FileTarget) (*fileio.LineStream, error)
}

// NewLoop creates a loop reading commands from in, writing the prompt and
// file contents to out, and sending diagnostics to report.
func NewLoop(in io.Reader, out io.Writer, report *Reporter, cfg config.Config) *Loop {
	return &Loop{
		in:     bufio.NewReader(in),
		out:    out,
		report: report,
		cfg:    cfg,
		state:  model.StatePrompting,
		open:   fileio.Open,
	}
}

// State returns the current state of the loop.
func (l *Loop) State() model.State {
	return l.state
}

// Run prompts for paths and echoes files until the exit command is entered.
//
// It returns nil on a graceful exit. Fatal conditions come back as a
// *model.CLIError carrying the exit code:
//   - ExitInputError when stdin fails or is closed without data
//   - ExitGeneralError when a validated file cannot be opened, or stdout
//     cannot be written
//
// Validation failures and bad lines are reported and never end the loop.
func (l *Loop) Run() error {
	for {
		l.transition(model.StatePrompting)
		if err := l.println(l.cfg.Prompt); err != nil {
			return l.terminate(model.WrapCLIError(model.ExitGeneralError, "failed to write to stdout", err))
		}

		cmd, err := l.ReadCommand()
		if err != nil {
			return l.terminate(model.WrapCLIError(model.ExitInputError, "failed to read user input", err))
		}

		switch cmd.Kind {
		case model.CommandExit:
			l.transition(model.StateTerminated)
			return nil
		case model.CommandEmpty:
			continue
		}

		l.transition(model.StateValidating)
		target, err := l.Validate(cmd.Path)
		if err != nil {
			continue
		}

		l.transition(model.StateStreaming)
		if l.cfg.EchoPath {
			if err := l.println(target.Path); err != nil {
				return l.terminate(model.WrapCLIError(model.ExitGeneralError, "failed to write to stdout", err))
			}
		}

		if err := l.StreamFile(target); err != nil {
			var openErr *model.OpenError
			if errors.As(err, &openErr) {
				return l.terminate(model.WrapCLIError(model.ExitGeneralError, "validated file could not be opened", openErr))
			}
			return l.terminate(model.WrapCLIError(model.ExitGeneralError, "failed to write to stdout", err))
		}
	}
}

// ReadCommand reads and classifies one line of input.
//
// Surrounding whitespace is trimmed before classification. A last line
// without a newline still counts; end-of-stream with nothing read is a
// *model.InputError wrapping io.EOF.
func (l *Loop) ReadCommand() (model.UserCommand, error) {
	text, err := l.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || text == "" {
			return model.UserCommand{}, &model.InputError{Err: err}
		}
	}

	cmd := model.ParseCommand(strings.TrimSpace(text), l.cfg.ExitCommand)
	logger.Debug("read %s command", cmd.Kind)
	return cmd, nil
}

// Validate checks that path names an existing regular file. On failure the
// rejection is reported and returned; the caller goes back to prompting.
func (l *Loop) Validate(path string) (model.FileTarget, error) {
	target, err := fileio.Check(path)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			l.report.Validation(vErr)
		}
		return model.FileTarget{}, err
	}

	logger.Debug("validated %s (%d bytes)", target.Path, target.Size)
	return target, nil
}

// StreamFile writes every line of target to the output, each followed by a
// newline, in file order. Bad lines are reported and skipped.
//
// It returns a *model.OpenError if the file can no longer be opened, or the
// write error if the output fails. The file is closed before returning.
func (l *Loop) StreamFile(target model.FileTarget) error {
	stream, err := l.open(target)
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()

	for {
		text, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var lineErr *model.LineReadError
			if errors.As(err, &lineErr) {
				l.report.LineError(lineErr)
				continue
			}
			return err
		}

		if err := l.println(text); err != nil {
			return err
		}
	}

	logger.Debug("streamed %d line(s) from %s", stream.Line(), target.Path)
	return nil
}

func (l *Loop) println(text string) error {
	_, err := fmt.Fprintln(l.out, text)
	return err
}

func (l *Loop) transition(next model.State) {
	if l.state != next {
		logger.Debug("state %s -> %s", l.state, next)
	}
	l.state = next
}

func (l *Loop) terminate(err error) error {
	l.transition(model.StateTerminated)
	return err
}
