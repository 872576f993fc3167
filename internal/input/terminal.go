package input

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal reads lines from an interactive terminal with line editing and
// history. The terminal is only in raw mode while a line is being read.
type Terminal struct {
	fd   int
	term *term.Terminal
	// Complete, if set, is called when Tab is pressed. It receives the line
	// and the cursor position in bytes.
	Complete func(line string, pos int) (newLine string, newPos int, ok bool)
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func NewTerminal(in *os.File, out io.Writer) *Terminal {
	t := &Terminal{fd: int(in.Fd())}
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	t.term = term.NewTerminal(rw, "")
	t.term.AutoCompleteCallback = t.autoComplete
	return t
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(t.fd, state)

	t.term.SetPrompt(prompt)
	return t.term.ReadLine()
}

func (t *Terminal) autoComplete(line string, pos int, key rune) (newLine string, newPos int, ok bool) {
	if key != '\t' || t.Complete == nil {
		return
	}
	return t.Complete(line, pos)
}
