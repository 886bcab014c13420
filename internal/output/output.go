// Package output provides consistent CLI output formatting for erljump.
// Result lists are styled with lipgloss when stdout is a terminal and
// printed plain otherwise, so editors can parse the output.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/erlkit/erljump/internal/backend"
)

// Styles holds the lipgloss styles for result rendering.
type Styles struct {
	Path    lipgloss.Style
	Line    lipgloss.Style
	Context lipgloss.Style
	Warn    lipgloss.Style
	Err     lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns the erljump palette.
func DefaultStyles() Styles {
	return Styles{
		Path:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Line:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Context: lipgloss.NewStyle(),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Err:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// Writer provides formatted output for the CLI.
type Writer struct {
	out      io.Writer
	useColor bool
	styles   Styles
}

// New creates an output Writer, enabling color when out is a terminal.
func New(out io.Writer) *Writer {
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{
		out:      out,
		useColor: useColor,
		styles:   DefaultStyles(),
	}
}

// IsTerminal reports whether the writer targets a terminal.
func (w *Writer) IsTerminal() bool {
	return w.useColor
}

// Info prints an informational message.
func (w *Writer) Info(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Infof prints a formatted informational message.
func (w *Writer) Infof(format string, args ...any) {
	w.Info(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	if w.useColor {
		msg = w.styles.Warn.Render(msg)
	}
	_, _ = fmt.Fprintf(w.out, "⚠️  %s\n", msg)
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	if w.useColor {
		msg = w.styles.Err.Render(msg)
	}
	_, _ = fmt.Fprintf(w.out, "❌ %s\n", msg)
}

// Match prints a single match in grep-style path:line: context form.
func (w *Writer) Match(m backend.Match) {
	if !w.useColor {
		_, _ = fmt.Fprintf(w.out, "%s:%d:%s\n", m.Path, m.Line, m.Context)
		return
	}
	_, _ = fmt.Fprintf(w.out, "%s%s%s\n",
		w.styles.Path.Render(m.Path),
		w.styles.Line.Render(fmt.Sprintf(":%d:", m.Line)),
		w.styles.Context.Render(strings.TrimRight(m.Context, " \t")))
}

// Matches prints a ranked candidate list, numbered for selection.
func (w *Writer) Matches(matches []backend.Match) {
	width := len(fmt.Sprintf("%d", len(matches)))
	for i, m := range matches {
		prefix := fmt.Sprintf("%*d. ", width, i+1)
		if w.useColor {
			prefix = w.styles.Dim.Render(prefix)
		}
		_, _ = fmt.Fprint(w.out, prefix)
		w.Match(m)
	}
}

// NoMatches prints the zero-result message for a symbol. Informational,
// not an error: the search ran and found nothing.
func (w *Writer) NoMatches(symbol string) {
	w.Infof("no matches found for %q", symbol)
}
