// Package tui reports validation results outside the interactive dialog.
package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/formmodal/internal/form"
)

// Report is the outcome of validating one record.
type Report struct {
	Data   form.Data
	Errors form.Errors
}

// Valid reports whether the record passed every check.
func (r Report) Valid() bool {
	return r.Errors.Empty()
}

// Reporter writes a Report.
type Reporter interface {
	Render(r Report) error
}

// ReporterOptions configures reporter creation.
type ReporterOptions struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
}

// NewReporter returns a styled reporter when the writer is a TTY, or a
// plain text reporter otherwise. ForcePlain overrides TTY detection.
func NewReporter(opts ReporterOptions) Reporter {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !IsTTY(opts.Writer) {
		return &PlainReporter{w: opts.Writer}
	}

	return newStyledReporter(opts.Writer)
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainReporter prints one line per checked field and a verdict line.
type PlainReporter struct {
	w io.Writer
}

// Render writes the report as aligned text lines.
func (p *PlainReporter) Render(r Report) error {
	for _, f := range form.CheckedFields() {
		status := "ok"
		if msg, ok := r.Errors[f]; ok {
			status = msg
		}
		if _, err := fmt.Fprintf(p.w, "%-6s %s\n", f, status); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w, verdict(r))
	return err
}

// StyledReporter renders the report with lipgloss colors and markers.
type StyledReporter struct {
	w      io.Writer
	label  lipgloss.Style
	pass   lipgloss.Style
	fail   lipgloss.Style
	header lipgloss.Style
}

func newStyledReporter(w io.Writer) *StyledReporter {
	re := lipgloss.NewRenderer(w)
	return &StyledReporter{
		w:      w,
		label:  re.NewStyle().Width(15).Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
		pass:   re.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		fail:   re.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		header: re.NewStyle().Bold(true),
	}
}

// Render writes the report with one marker per checked field.
func (s *StyledReporter) Render(r Report) error {
	for _, f := range form.CheckedFields() {
		line := s.pass.Render("✓ ok")
		if msg, ok := r.Errors[f]; ok {
			line = s.fail.Render("✗ " + msg)
		}
		if _, err := fmt.Fprintln(s.w, s.label.Render(f.Label())+line); err != nil {
			return err
		}
	}
	v := s.pass
	if !r.Valid() {
		v = s.fail
	}
	_, err := fmt.Fprintln(s.w, s.header.Inherit(v).Render(verdict(r)))
	return err
}

func verdict(r Report) string {
	switch n := len(r.Errors); n {
	case 0:
		return "valid"
	case 1:
		return "invalid: 1 error"
	default:
		return fmt.Sprintf("invalid: %d errors", n)
	}
}
