package action

import (
	"fmt"

	"github.com/xeniagda/red/internal/buffer"
)

// Print shows the selected lines, with their indices if Numbered is set.
type Print struct {
	Numbered bool
}

func (p Print) Apply(ctx *Context) (bool, error) {
	b := ctx.Session.Current()
	lines, err := selected(b)
	if err != nil {
		return false, err
	}
	ctx.Out.Lines(b.Filename, lines, p.Numbered)
	return false, nil
}

// ShowRegisters prints the register named Name, or every register if All is
// set.
type ShowRegisters struct {
	Name string
	All  bool
}

func (s ShowRegisters) Apply(ctx *Context) (bool, error) {
	if !s.All {
		lines, ok := ctx.Session.Register(s.Name)
		if !ok {
			return false, errorf(NoSuchRegister, "%s", buffer.NormalizeName(s.Name))
		}
		for _, l := range lines {
			ctx.Out.Println(l)
		}
		return false, nil
	}

	for _, name := range ctx.Session.RegisterNames() {
		lines, _ := ctx.Session.Register(name)
		ctx.Out.Println(name + ":")
		for _, l := range lines {
			ctx.Out.Println("\t" + l)
		}
	}
	return false, nil
}

// SetMark records the current selection under a mark.
type SetMark struct {
	Name string
}

func (m SetMark) Apply(ctx *Context) (bool, error) {
	b := ctx.Session.Current()
	b.SetMark(m.Name, b.Cursor)
	return false, nil
}

type Clear struct{}

func (Clear) Apply(ctx *Context) (bool, error) {
	if err := ctx.Out.Clear(); err != nil {
		return false, wrap(IO, err, "clearing screen")
	}
	return false, nil
}

// ListBuffers prints one line per open buffer. The active buffer is marked
// with '*' and buffers with unsaved changes with '+'.
type ListBuffers struct{}

func (ListBuffers) Apply(ctx *Context) (bool, error) {
	for i, b := range ctx.Session.Buffers() {
		ctx.Out.Println(describeBuffer(i, b, i == ctx.Session.CurrentIndex()))
	}
	return false, nil
}

func describeBuffer(i int, b *buffer.Buffer, current bool) string {
	flags := []byte("  ")
	if current {
		flags[0] = '*'
	}
	if !b.Saved {
		flags[1] = '+'
	}
	name := b.Filename
	if name == "" {
		name = "[no name]"
	}
	return fmt.Sprintf("%s %d\t%s (%d lines)", flags, i, name, b.Len())
}
