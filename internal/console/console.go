// Package console renders CLI output with ANSI styling when the target
// is an interactive terminal, and plain text otherwise.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/modgud/internal/diagnostics"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// Formatter writes styled text to a single destination.
type Formatter struct {
	out     io.Writer
	colored bool
}

// NewFormatter styles output only when f is an interactive terminal.
func NewFormatter(f *os.File) *Formatter {
	colored := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return &Formatter{out: f, colored: colored}
}

// NewPlainFormatter writes unstyled text to w. Used by tests.
func NewPlainFormatter(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

func (f *Formatter) style(code, s string) string {
	if !f.colored {
		return s
	}
	return code + s + ansiReset
}

func (f *Formatter) Bold(s string) string   { return f.style(ansiBold, s) }
func (f *Formatter) Red(s string) string    { return f.style(ansiRed, s) }
func (f *Formatter) Green(s string) string  { return f.style(ansiGreen, s) }
func (f *Formatter) Yellow(s string) string { return f.style(ansiYellow, s) }

// Printf writes formatted plain text.
func (f *Formatter) Printf(format string, args ...any) {
	fmt.Fprintf(f.out, format, args...)
}

// PrintDiagnostic renders one diagnostic with its code highlighted and,
// when known, the source position.
func (f *Formatter) PrintDiagnostic(file string, err *diagnostics.DiagnosticError) {
	loc := file
	if err.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", file, err.Line, err.Column)
	}
	fmt.Fprintf(f.out, "%s %s %s\n", f.Red("error["+string(err.Code)+"]"), f.Bold(loc+":"), err.Message)
}
