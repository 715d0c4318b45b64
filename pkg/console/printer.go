// Package console renders operator-facing status lines and reads interactive input.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes success/error/info status lines.
// On a terminal they are colored; otherwise they carry a plain-text prefix.
type Printer struct {
	out   *termenv.Output
	w     io.Writer
	color bool
}

// NewPrinter builds a Printer. color selects ANSI styling over plain prefixes.
func NewPrinter(w io.Writer, color bool) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{
		out:   termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI)),
		w:     w,
		color: color,
	}
}

// NewAutoPrinter colors output only when f is a terminal and NO_COLOR is unset.
func NewAutoPrinter(f *os.File) *Printer {
	return NewPrinter(f, ColorEnabled(f))
}

// ColorEnabled reports whether f should receive ANSI colors.
func ColorEnabled(f *os.File) bool {
	if f == nil {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Success prints a green check line.
func (p *Printer) Success(format string, args ...any) {
	p.line("✓", "SUCCESS:", termenv.ANSIBrightGreen, format, args...)
}

// Error prints a red cross line.
func (p *Printer) Error(format string, args ...any) {
	p.line("✗", "ERROR:", termenv.ANSIBrightRed, format, args...)
}

// Info prints a blue arrow line.
func (p *Printer) Info(format string, args ...any) {
	p.line("→", "INFO:", termenv.ANSIBrightBlue, format, args...)
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) line(symbol, prefix string, color termenv.ANSIColor, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !p.color {
		_, _ = fmt.Fprintf(p.w, "%s %s\n", prefix, msg)
		return
	}
	styled := p.out.String(symbol + " " + msg).Foreground(color)
	_, _ = fmt.Fprintln(p.w, styled.String())
}
