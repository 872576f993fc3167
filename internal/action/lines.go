package action

import (
	"github.com/xeniagda/red/internal/buffer"
)

const insertPrompt = "> "

// Delete removes the selected lines and stores them in a register.
type Delete struct {
	Register string
}

func (d Delete) Apply(ctx *Context) (bool, error) {
	b := ctx.Session.Current()
	lines, err := selected(b)
	if err != nil {
		return false, err
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if _, err := b.RemoveLine(lines[i].Index); err != nil {
			return true, bounds(err)
		}
	}
	b.EnsureLine()

	ctx.Session.SetRegister(d.Register, texts(lines))
	return len(lines) > 0, nil
}

// Yank stores the selected lines in a register.
type Yank struct {
	Register string
}

func (y Yank) Apply(ctx *Context) (bool, error) {
	lines, err := selected(ctx.Session.Current())
	if err != nil {
		return false, err
	}
	ctx.Session.SetRegister(y.Register, texts(lines))
	return false, nil
}

// Paste inserts the content of a register at the selected lines.
type Paste struct {
	Register string
}

func (p Paste) Apply(ctx *Context) (bool, error) {
	lines, ok := ctx.Session.Register(p.Register)
	if !ok {
		return false, errorf(NoSuchRegister, "%s", buffer.NormalizeName(p.Register))
	}
	b := ctx.Session.Current()
	n, err := place(b, lines, b.Cursor.Sorted())
	return n > 0, err
}

// Copy copies the selected lines to after each line of To.
type Copy struct {
	To buffer.Range
}

func (c Copy) Apply(ctx *Context) (bool, error) {
	b := ctx.Session.Current()
	lines, err := selected(b)
	if err != nil {
		return false, err
	}

	dests := c.To.Sorted()
	for i, d := range dests {
		if d >= uint(b.Len()) {
			return false, errorf(OutOfBounds, "copy destination %d (buffer has %d lines)", d, b.Len())
		}
		dests[i] = d + 1
	}

	n, err := place(b, texts(lines), dests)
	return n > 0, err
}

// place inserts lines into b. Line i goes to dests[i], adjusted for the lines
// already inserted before it. Lines left over once dests is exhausted follow
// the last placed line.
func place(b *buffer.Buffer, lines []string, dests []uint) (placed int, err error) {
	var last uint
	for i, l := range lines {
		var at uint
		switch {
		case i < len(dests):
			at = dests[i] + uint(i)
		case placed > 0:
			at = last + 1
		default:
			return placed, errorf(NoRange, "nowhere to put %d lines", len(lines))
		}

		if err = b.InsertLine(at, l); err != nil {
			return placed, bounds(err)
		}
		last = at
		placed++
	}
	return
}

// Insert reads lines until a lone "." and inserts each before every selected
// line.
type Insert struct{}

func (Insert) Apply(ctx *Context) (bool, error) {
	return insertLines(ctx, false)
}

// Append reads lines until a lone "." and inserts each after every selected
// line, keeping the order in which they were typed.
type Append struct{}

func (Append) Apply(ctx *Context) (bool, error) {
	return insertLines(ctx, true)
}

func insertLines(ctx *Context, after bool) (dirty bool, err error) {
	b := ctx.Session.Current()
	targets := b.Cursor
	if targets.IsEmpty() {
		return false, errorf(NoRange, "no lines selected")
	}

	limit := uint(b.Len())
	if after {
		limit--
	}
	if max, _ := targets.Max(); max > limit {
		return false, errorf(OutOfBounds, "line %d (buffer has %d lines)", max, b.Len())
	}

	for k := uint(0); ; k++ {
		line, done, err := readLine(ctx, insertPrompt)
		if err != nil || done || line == "." {
			return dirty, err
		}

		for _, t := range targets.Descending() {
			at := t
			if after {
				at = t + 1 + k
			}
			if err := b.InsertLine(at, line); err != nil {
				return dirty, bounds(err)
			}
			targets = targets.ShiftedAt(at)
			dirty = true
		}
	}
}

// Prefix prepends Text to every selected line.
type Prefix struct {
	Text string
}

func (p Prefix) Apply(ctx *Context) (bool, error) {
	return edit(ctx, func(line string) string { return p.Text + line })
}

// Suffix appends Text to every selected line.
type Suffix struct {
	Text string
}

func (s Suffix) Apply(ctx *Context) (bool, error) {
	return edit(ctx, func(line string) string { return line + s.Text })
}

// edit replaces every selected line by f applied to it.
func edit(ctx *Context, f func(line string) string) (dirty bool, err error) {
	b := ctx.Session.Current()
	lines, err := selected(b)
	if err != nil {
		return false, err
	}
	for _, l := range lines {
		n := f(l.Text)
		if n == l.Text {
			continue
		}
		if err := b.SetLine(l.Index, n); err != nil {
			return dirty, bounds(err)
		}
		dirty = true
	}
	return
}
