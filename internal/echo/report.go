package echo

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/shinji-kodama/file-echo/internal/config"
	"github.com/shinji-kodama/file-echo/internal/model"
)

// ReporterOptions selects how diagnostics are rendered.
type ReporterOptions struct {
	// JSON renders every diagnostic as a single-line JSON object.
	// It takes precedence over Color.
	JSON bool

	// Color selects styled text output.
	Color config.ColorMode
}

// Reporter writes diagnostics to the error stream. Standard output is never
// touched, so piping stdout still yields only the prompt and file contents.
type Reporter struct {
	w    io.Writer
	json bool

	// styled is false for plain text; the styles below are unused then.
	styled    bool
	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer, opts ReporterOptions) *Reporter {
	r := &Reporter{w: w, json: opts.JSON}
	if opts.JSON || !colorEnabled(w, opts.Color) {
		return r
	}

	// The profile is fixed rather than detected so that "always" also
	// colours output redirected to a file.
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI)

	r.styled = true
	r.errStyle = renderer.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
	r.warnStyle = renderer.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	return r
}

// colorEnabled resolves ColorAuto by asking whether w is a terminal.
func colorEnabled(w io.Writer, mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// diagnosticJSON is the JSON shape of one diagnostic. It extends the
// {"error": {"message", "detail"}} shape used for fatal errors.
type diagnosticJSON struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Path    string `json:"path,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// Validation reports a rejected path. The loop continues afterwards.
func (r *Reporter) Validation(err *model.ValidationError) {
	if r.json {
		r.writeJSON(diagnosticJSON{
			Message: err.Error(),
			Path:    err.Path,
			Reason:  string(err.Reason),
		})
		return
	}
	r.writeText(r.warnStyle, err.Error())
}

// LineError reports a line that could not be read or decoded.
func (r *Reporter) LineError(err *model.LineReadError) {
	if r.json {
		r.writeJSON(diagnosticJSON{
			Message: "Error reading line",
			Detail:  err.Err.Error(),
			Line:    err.Line,
		})
		return
	}
	r.writeText(r.warnStyle, fmt.Sprintf("Error reading line: %v", err.Err))
}

// Fatal reports the error that is about to terminate the process.
func (r *Reporter) Fatal(message string, underlying error) {
	if r.json {
		d := diagnosticJSON{Message: message}
		if underlying != nil {
			d.Detail = underlying.Error()
		}
		r.writeJSON(d)
		return
	}

	text := "Error: " + message
	if underlying != nil {
		text = fmt.Sprintf("Error: %s: %v", message, underlying)
	}
	r.writeText(r.errStyle, text)
}

func (r *Reporter) writeText(style lipgloss.Style, text string) {
	if r.styled {
		text = style.Render(text)
	}
	fmt.Fprintln(r.w, text)
}

func (r *Reporter) writeJSON(d diagnosticJSON) {
	data, _ := json.Marshal(map[string]diagnosticJSON{"error": d})
	fmt.Fprintln(r.w, string(data))
}
