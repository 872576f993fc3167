// Package editor runs the read-evaluate loop: it reads command lines from
// the scripted backlog and then from the user, runs them against the session
// and reports what went wrong.
package editor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeniagda/red/internal/action"
	"github.com/xeniagda/red/internal/docfs"
	"github.com/xeniagda/red/internal/expr"
	"github.com/xeniagda/red/internal/input"
	"github.com/xeniagda/red/internal/render"
	"github.com/xeniagda/red/internal/session"
	"github.com/xeniagda/red/internal/words"
)

// replayLine, as a whole input line, runs the previous line again.
const replayLine = "!"

type Options struct {
	Prompt      string
	TabWidth    int
	HistorySize int
	// Input is read once the backlog is empty.
	Input input.Source
	Out   *render.Printer
	Store action.Store
	// Watcher and Completer are optional.
	Watcher   *docfs.Watcher
	Completer *words.Completer
}

type Editor struct {
	session   *session.Session
	backlog   *input.Backlog
	out       *render.Printer
	ctx       *action.Context
	interp    *expr.Interpreter
	history   *History
	watcher   *docfs.Watcher
	completer *words.Completer
	synced    int
	prompt    string
	eofWarned bool
}

func New(opts Options) *Editor {
	e := &Editor{
		session:   session.New(),
		backlog:   input.NewBacklog(opts.Input),
		out:       opts.Out,
		history:   NewHistory(opts.HistorySize),
		watcher:   opts.Watcher,
		completer: opts.Completer,
		prompt:    opts.Prompt,
	}
	e.backlog.Echo = func(prompt, line string) {
		e.out.Info("%s%s", prompt, line)
	}
	e.ctx = &action.Context{
		Session: e.session,
		Input:   e.backlog,
		Out:     e.out,
		Store:   opts.Store,
	}
	e.interp = expr.NewInterpreter(e.ctx, opts.TabWidth)
	return e
}

func (e *Editor) Session() *session.Session {
	return e.session
}

func (e *Editor) History() *History {
	return e.history
}

// Command queues the ';' separated commands in text.
func (e *Editor) Command(text string) {
	e.backlog.Push(text)
}

func (e *Editor) SetSilent(silent bool) {
	e.out.SetSilent(silent)
}

// Open queues opening path in a new buffer.
func (e *Editor) Open(path string) {
	e.backlog.PushLine("bn " + path)
}

// OpenFiles loads each path into the active buffer in turn, discarding
// whatever it held.
func (e *Editor) OpenFiles(paths []string) {
	for _, p := range paths {
		dbg("OpenFiles: %s", p)
		if err := action.Exec(e.ctx, action.Edit{Force: true, Path: p}); err != nil {
			e.out.Error(err)
		}
	}
}

// Run reads and runs lines until the session is quit or the input ends.
func (e *Editor) Run() error {
	for {
		e.beforePrompt()

		line, err := e.backlog.ReadLine(e.prompt)
		if errors.Is(err, io.EOF) {
			if e.endOfInput() {
				return nil
			}
			continue
		}
		if err != nil {
			return err
		}
		e.eofWarned = false

		if e.RunLine(line, e.backlog.Scripted()) {
			return nil
		}
	}
}

// RunLine runs one command line. scripted lines read their sub-mode input
// from the backlog only. quit is set when the session should end.
func (e *Editor) RunLine(line string, scripted bool) (quit bool) {
	if strings.TrimSpace(line) == replayLine {
		last, ok := e.history.Last()
		if !ok {
			e.out.Warn("no previous line")
			return false
		}
		line = last
	}

	if scripted {
		e.ctx.Input = e.backlog.QueueOnly()
	} else {
		e.ctx.Input = e.backlog
	}

	entry := e.history.Started(line, scripted)
	err := e.interp.Execute(line)
	e.history.Completed(entry, err)

	if errors.Is(err, action.ErrQuit) {
		dbg("RunLine: quit")
		return true
	}
	if err != nil {
		dbg("RunLine: %q: %v", line, err)
		e.out.Error(err)
	}
	return false
}

// endOfInput reports whether the loop may end. The first end of input with
// unsaved buffers only warns.
func (e *Editor) endOfInput() bool {
	var unsaved []string
	for i, b := range e.session.Buffers() {
		if !b.Saved {
			unsaved = append(unsaved, fmt.Sprint(i))
		}
	}
	if len(unsaved) == 0 || e.eofWarned {
		return true
	}

	e.out.Warn("unsaved changes in buffer %s; end the input again to quit", strings.Join(unsaved, ", "))
	e.eofWarned = true
	return false
}

func (e *Editor) beforePrompt() {
	if e.watcher != nil {
		for _, f := range e.watcher.Drain() {
			e.out.Warn("%s changed on disk", f)
		}
	}
	e.syncCompletions()
}

func completionSource(i int) string {
	return fmt.Sprintf("buffer %d", i)
}

func (e *Editor) syncCompletions() {
	if e.completer == nil {
		return
	}
	bufs := e.session.Buffers()
	for i, b := range bufs {
		e.completer.Build(completionSource(i), b.Lines())
	}
	for i := len(bufs); i < e.synced; i++ {
		e.completer.DeleteAllFromSource(completionSource(i))
	}
	e.synced = len(bufs)
}

var Debug func(message string, args ...interface{})

func dbg(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}
