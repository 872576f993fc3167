package buffer

import "strings"

// Block returns the indentation block that starts at line start: the line
// itself followed by every line indented deeper than it. Blank lines inside
// the block are included but trailing blank lines are not. A blank start line
// yields an empty Range, as does an index outside the buffer.
func (b *Buffer) Block(start uint, tabWidth int) Range {
	if start >= uint(len(b.lines)) || isBlank(b.lines[start]) {
		return Range{}
	}

	base := indentWidth(b.lines[start], tabWidth)
	end := start
	for i := start + 1; i < uint(len(b.lines)); i++ {
		l := b.lines[i]
		if isBlank(l) {
			continue
		}
		if indentWidth(l, tabWidth) <= base {
			break
		}
		end = i
	}
	return Span(start, end)
}

// BlockRange expands every index of r to its block.
func (b *Buffer) BlockRange(r Range, tabWidth int) Range {
	res := Range{}
	for _, l := range r.Sorted() {
		res = res.Union(b.Block(l, tabWidth))
	}
	return res
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func indentWidth(s string, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	w := 0
	for _, r := range s {
		switch r {
		case ' ':
			w++
		case '\t':
			w += tabWidth - w%tabWidth
		default:
			return w
		}
	}
	return w
}
