// Package render writes command output to the console: buffer lines with
// optional line numbers and syntax highlighting, informational messages and
// diagnostics.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"github.com/xeniagda/red/internal/action"
	"github.com/xeniagda/red/internal/ansi"
)

// gapMarker is printed between two numbered lines that are not adjacent.
const gapMarker = "    ..."

type Options struct {
	// Silent drops informational messages.
	Silent bool
	// Color enables colored line numbers and diagnostics.
	Color bool
	// Highlight enables syntax highlighting of printed lines.
	Highlight bool
	// Style is the chroma style used for highlighting.
	Style string
	// NumberColor names the color of line numbers, e.g. "yellow".
	NumberColor string
}

// Printer implements action.Printer on top of a pair of writers.
type Printer struct {
	out, errOut io.Writer
	opts        Options
	number      *color.Color
	diag        *color.Color
	hl          *highlighter
}

var _ action.Printer = (*Printer)(nil)

func New(out, errOut io.Writer, opts Options) *Printer {
	p := &Printer{
		out:    out,
		errOut: errOut,
		opts:   opts,
		number: color.New(colorAttribute(opts.NumberColor)),
		diag:   color.New(color.FgRed),
	}
	if opts.Color {
		p.number.EnableColor()
		p.diag.EnableColor()
	} else {
		p.number.DisableColor()
		p.diag.DisableColor()
	}
	if opts.Highlight {
		p.hl = newHighlighter(opts.Style)
	}
	return p
}

func (p *Printer) SetSilent(silent bool) {
	p.opts.Silent = silent
}

func (p *Printer) Silent() bool {
	return p.opts.Silent
}

// Lines prints lines. When numbered, each line is preceded by its index and
// a tab, and runs of lines that are not adjacent are separated by gapMarker.
func (p *Printer) Lines(filename string, lines []action.Line, numbered bool) {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = ansi.Strip(l.Text)
	}
	if p.hl != nil {
		texts = p.hl.highlight(filename, texts)
	}

	for i, l := range lines {
		if !numbered {
			fmt.Fprintln(p.out, texts[i])
			continue
		}
		if i > 0 && l.Index != lines[i-1].Index+1 {
			fmt.Fprintln(p.out, gapMarker)
		}
		fmt.Fprintf(p.out, "%s\t%s\n", p.number.Sprint(l.Index), texts[i])
	}
}

func (p *Printer) Println(text string) {
	fmt.Fprintln(p.out, ansi.Strip(text))
}

func (p *Printer) Info(format string, args ...interface{}) {
	if p.opts.Silent {
		return
	}
	fmt.Fprintf(p.out, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(p.out)
	}
}

// Error prints a diagnostic to the error writer.
func (p *Printer) Error(err error) {
	p.diag.Fprintln(p.errOut, err.Error())
}

// Warn prints a warning to the error writer. Warnings are shown even in
// silent mode.
func (p *Printer) Warn(format string, args ...interface{}) {
	p.diag.Fprintf(p.errOut, format+"\n", args...)
}

func (p *Printer) Clear() error {
	termenv.NewOutput(p.out).ClearScreen()
	return nil
}

func colorAttribute(name string) color.Attribute {
	switch strings.ToLower(name) {
	case "black":
		return color.FgBlack
	case "red":
		return color.FgRed
	case "green":
		return color.FgGreen
	case "yellow":
		return color.FgYellow
	case "blue":
		return color.FgBlue
	case "magenta":
		return color.FgMagenta
	case "cyan":
		return color.FgCyan
	case "white":
		return color.FgWhite
	}
	return color.Reset
}
