// Package action implements the commands that operate on a session: each
// parsed command becomes an Action that is applied to the active buffer, the
// registers or the list of open buffers.
package action

import (
	"errors"
	"io"

	"github.com/xeniagda/red/internal/buffer"
	"github.com/xeniagda/red/internal/session"
)

// LineSource supplies lines of input for the interactive commands. It returns
// io.EOF when the input is exhausted.
type LineSource interface {
	ReadLine(prompt string) (string, error)
}

// Line is a buffer line together with its index.
type Line struct {
	Index uint
	Text  string
}

// Printer displays the output of commands.
type Printer interface {
	// Lines prints buffer lines. filename is used to pick a syntax highlighter.
	Lines(filename string, lines []Line, numbered bool)
	// Println prints one line of command output.
	Println(text string)
	// Info prints informational messages. They are dropped in silent mode.
	Info(format string, args ...interface{})
	Clear() error
}

// Store reads and writes documents. Load returns an error matching
// fs.ErrNotExist if the document does not exist.
type Store interface {
	Load(path string) ([]byte, error)
	Save(path string, data []byte) error
}

// Forgetter is implemented by stores that keep track of the documents they
// load or save. Forget is called once no buffer holds path anymore.
type Forgetter interface {
	Forget(path string)
}

// Context is everything an Action may touch.
type Context struct {
	Session *session.Session
	Input   LineSource
	Out     Printer
	Store   Store
}

type Action interface {
	// Apply performs the action. dirty reports whether the active buffer's
	// content was modified.
	Apply(ctx *Context) (dirty bool, err error)
}

// Exec applies a and marks the buffer that was active when it started as
// unsaved if a modified it.
func Exec(ctx *Context, a Action) error {
	b := ctx.Session.Current()
	dbg("Exec: applying %#v", a)
	dirty, err := a.Apply(ctx)
	if dirty {
		b.Saved = false
	}
	if err != nil {
		dbg("Exec: %#v failed: %v", a, err)
	}
	return err
}

// readLine reads one line for an interactive command. done is set at the end
// of the input.
func readLine(ctx *Context, prompt string) (line string, done bool, err error) {
	line, err = ctx.Input.ReadLine(prompt)
	if errors.Is(err, io.EOF) {
		return "", true, nil
	}
	if err != nil {
		return "", true, wrap(IO, err, "reading input")
	}
	return line, false, nil
}

// selected returns the selected lines of b in ascending index order.
func selected(b *buffer.Buffer) ([]Line, error) {
	idx := b.Cursor.Sorted()
	lines := make([]Line, 0, len(idx))
	for _, i := range idx {
		text, err := b.Line(i)
		if err != nil {
			return nil, bounds(err)
		}
		lines = append(lines, Line{Index: i, Text: text})
	}
	return lines, nil
}

func texts(lines []Line) []string {
	s := make([]string, len(lines))
	for i, l := range lines {
		s[i] = l.Text
	}
	return s
}

// Debug, if set, receives a trace of every applied Action.
var Debug func(message string, args ...interface{})

func dbg(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}
