// Package output prints styled, user-facing messages.
//
// Messages go to an injected writer so commands stay testable. Styling uses
// lipgloss, which drops colours automatically when the writer is not a
// terminal. Diagnostics for developers belong in the logger, not here.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Printer writes styled messages to w.
type Printer struct {
	w io.Writer
	p *message.Printer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w, p: message.NewPrinter(language.English)}
}

// Success prints a completed operation.
//
// Example:
//
//	out.Success("Created my-card")
func (o *Printer) Success(format string, args ...any) {
	fmt.Fprintln(o.w, successStyle.Render("✓ "+o.p.Sprintf(format, args...)))
}

// Error prints a failure that needs the user's attention.
func (o *Printer) Error(format string, args ...any) {
	fmt.Fprintln(o.w, errorStyle.Render("✗ "+o.p.Sprintf(format, args...)))
}

// Warn prints a non-fatal problem.
func (o *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(o.w, warnStyle.Render("! "+o.p.Sprintf(format, args...)))
}

// Info prints a status update.
func (o *Printer) Info(format string, args ...any) {
	fmt.Fprintln(o.w, infoStyle.Render(o.p.Sprintf(format, args...)))
}

// Step prints an indented next step.
//
// Example:
//
//	out.Step("cd my-card")
//	out.Step("npm install")
func (o *Printer) Step(format string, args ...any) {
	fmt.Fprintln(o.w, stepStyle.Render("   "+o.p.Sprintf(format, args...)))
}

// Plain prints an unstyled line.
func (o *Printer) Plain(format string, args ...any) {
	fmt.Fprintln(o.w, o.p.Sprintf(format, args...))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
