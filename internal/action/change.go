package action

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	alphabetSymbols = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	endSymbol       = '$'

	spanPrompt = "span> "
	textPrompt = "text> "
)

// Change edits part of every selected line. For each line it shows the line
// with a symbol under every character, reads a one or two symbol span and the
// text that replaces that span.
type Change struct{}

func (Change) Apply(ctx *Context) (dirty bool, err error) {
	b := ctx.Session.Current()
	lines, err := selected(b)
	if err != nil {
		return false, err
	}

	for _, l := range lines {
		offsets, symbols := alphabet(l.Text)
		ctx.Out.Println(l.Text)
		ctx.Out.Println(symbols)

		sel, done, err := readLine(ctx, spanPrompt)
		if err != nil || done {
			return dirty, err
		}
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}

		start, end, err := resolveSpan(symbols, offsets, sel)
		if err != nil {
			return dirty, err
		}

		text, done, err := readLine(ctx, textPrompt)
		if err != nil || done {
			return dirty, err
		}

		if err := b.SetLine(l.Index, l.Text[:start]+text+l.Text[end:]); err != nil {
			return dirty, bounds(err)
		}
		dirty = true
	}
	return
}

// alphabet assigns a symbol to every grapheme cluster of line, cycling
// through alphabetSymbols, followed by endSymbol for the end of the line.
// offsets holds the byte offset that each symbol stands for.
func alphabet(line string) (offsets []int, symbols string) {
	var buf strings.Builder
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		start, _ := g.Positions()
		buf.WriteByte(alphabetSymbols[len(offsets)%len(alphabetSymbols)])
		offsets = append(offsets, start)
	}
	buf.WriteByte(endSymbol)
	offsets = append(offsets, len(line))
	return offsets, buf.String()
}

// resolveSpan turns a span selector into byte offsets. The first symbol
// resolves to its first occurrence and the second to its first occurrence at
// or after the first. A single symbol selects the empty span before it.
func resolveSpan(symbols string, offsets []int, sel string) (start, end int, err error) {
	r := []rune(sel)
	if len(r) > 2 {
		return 0, 0, errorf(OutOfBounds, "span %q has more than two symbols", sel)
	}

	s := symbolIndex(symbols, r[0], 0)
	if s < 0 {
		return 0, 0, errorf(OutOfBounds, "no symbol %q", r[0])
	}
	if len(r) == 1 {
		return offsets[s], offsets[s], nil
	}

	e := symbolIndex(symbols, r[1], s)
	if e < 0 {
		return 0, 0, errorf(OutOfBounds, "no symbol %q after %q", r[1], r[0])
	}
	return offsets[s], offsets[e], nil
}

func symbolIndex(symbols string, r rune, from int) int {
	if r > 0x7f {
		return -1
	}
	i := strings.IndexByte(symbols[from:], byte(r))
	if i < 0 {
		return -1
	}
	return i + from
}
