package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Printer renders diagnostics to a writer, coloring codes when the
// destination is a terminal (or when forced by configuration).
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter builds a printer for out. colorMode is "auto", "always" or
// "never"; in auto mode color is enabled only when out is a TTY.
func NewPrinter(out io.Writer, colorMode string) *Printer {
	color := false
	switch colorMode {
	case "always":
		color = true
	case "never":
		color = false
	default:
		if f, ok := out.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return &Printer{out: out, color: color}
}

// Print writes one diagnostic per line.
func (p *Printer) Print(errs []*DiagnosticError) {
	for _, e := range errs {
		loc := fmt.Sprintf("%d:%d", e.Token.Line, e.Token.Column)
		if e.File != "" {
			loc = e.File + ":" + loc
		}
		if p.color {
			fmt.Fprintf(p.out, "%s%s%s: %s[%s]%s %s\n", ansiBold, loc, ansiReset, ansiRed, e.Code, ansiReset, e.Message)
		} else {
			fmt.Fprintf(p.out, "%s: [%s] %s\n", loc, e.Code, e.Message)
		}
	}
	if len(errs) > 1 {
		fmt.Fprintf(p.out, "%d errors\n", len(errs))
	}
}
