package action

import (
	"errors"
	"io/fs"

	"github.com/xeniagda/red/internal/buffer"
)

// NewBuffer opens a new buffer and makes it active. If Path is set the
// document is loaded into it.
type NewBuffer struct {
	Path string
}

func (n NewBuffer) Apply(ctx *Context) (bool, error) {
	b := buffer.New()
	if n.Path != "" {
		if err := load(ctx, b, n.Path); err != nil {
			return false, err
		}
	}
	ctx.Session.Add(b)
	return false, nil
}

// SwitchBuffer makes buffer Index active.
type SwitchBuffer struct {
	Index int
}

func (s SwitchBuffer) Apply(ctx *Context) (bool, error) {
	return false, bounds(ctx.Session.Switch(s.Index))
}

// CloseBuffer closes the active buffer. Closing the last buffer returns
// ErrQuit. A buffer with unsaved changes is only closed if Force is set.
type CloseBuffer struct {
	Force bool
}

func (c CloseBuffer) Apply(ctx *Context) (bool, error) {
	b := ctx.Session.Current()
	if !b.Saved && !c.Force {
		return false, errorf(Other, "buffer %d has unsaved changes", ctx.Session.CurrentIndex())
	}
	if !ctx.Session.CloseCurrent() {
		return false, ErrQuit
	}
	release(ctx, b.Filename)
	return false, nil
}

// Write saves the active buffer to Path, or to the buffer's filename if Path
// is empty.
type Write struct {
	Path string
}

func (w Write) Apply(ctx *Context) (bool, error) {
	b := ctx.Session.Current()
	path := w.Path
	if path == "" {
		path = b.Filename
	}
	if path == "" {
		return false, errorf(Other, "no filename")
	}

	data := []byte(b.Text())
	if err := ctx.Store.Save(path, data); err != nil {
		return false, wrap(IO, err, "writing %s", path)
	}
	setFilename(ctx, b, path)
	b.Saved = true
	ctx.Out.Info("%d bytes written to %s", len(data), path)
	return false, nil
}

// Edit replaces the content of the active buffer with the document at Path,
// or reloads the buffer's file if Path is empty. Unsaved changes are only
// discarded if Force is set.
type Edit struct {
	Force bool
	Path  string
}

func (e Edit) Apply(ctx *Context) (bool, error) {
	b := ctx.Session.Current()
	if !b.Saved && !e.Force {
		return false, errorf(Other, "buffer has unsaved changes")
	}

	path := e.Path
	if path == "" {
		path = b.Filename
	}
	if path == "" {
		return false, errorf(Other, "no filename")
	}
	return false, load(ctx, b, path)
}

func load(ctx *Context, b *buffer.Buffer, path string) error {
	data, err := ctx.Store.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		b.SetLines(nil)
		ctx.Out.Info("%s: new file", path)
	case err != nil:
		return wrap(IO, err, "reading %s", path)
	default:
		lines := buffer.SplitText(string(data))
		b.SetLines(lines)
		ctx.Out.Info("%s: %d lines", path, len(lines))
	}
	setFilename(ctx, b, path)
	b.Saved = true
	return nil
}

func setFilename(ctx *Context, b *buffer.Buffer, path string) {
	old := b.Filename
	b.Filename = path
	if old != path {
		release(ctx, old)
	}
}

// release tells the store that path is no longer needed, unless an open
// buffer still holds it.
func release(ctx *Context, path string) {
	f, ok := ctx.Store.(Forgetter)
	if !ok || path == "" {
		return
	}
	for _, b := range ctx.Session.Buffers() {
		if b.Filename == path {
			return
		}
	}
	dbg("release: forgetting %s", path)
	f.Forget(path)
}
