package buffer

import (
	"bytes"
	"fmt"
	"sort"
)

// Range is an immutable set of line indices. The zero value is the empty Range.
//
// Indices are unsigned and offsets use wrapping arithmetic, so an offset
// that moves an index below zero produces a very large index rather than an
// error. Such indices are only detected when they are used to access a line.
type Range struct {
	lines map[uint]struct{}
}

func NewRange(lines ...uint) Range {
	r := Range{lines: make(map[uint]struct{}, len(lines))}
	for _, l := range lines {
		r.lines[l] = struct{}{}
	}
	return r
}

// Span returns the Range containing every index from start to end inclusive.
// If start is after end the Range is empty.
func Span(start, end uint) Range {
	r := Range{lines: make(map[uint]struct{})}
	if start > end {
		return r
	}
	for i := start; ; i++ {
		r.lines[i] = struct{}{}
		if i == end {
			break
		}
	}
	return r
}

func (r Range) Len() int {
	return len(r.lines)
}

func (r Range) IsEmpty() bool {
	return len(r.lines) == 0
}

func (r Range) Contains(line uint) bool {
	_, ok := r.lines[line]
	return ok
}

// Sorted returns the indices in ascending order.
func (r Range) Sorted() []uint {
	s := make([]uint, 0, len(r.lines))
	for l := range r.lines {
		s = append(s, l)
	}
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}

// Descending returns the indices in descending order.
func (r Range) Descending() []uint {
	s := r.Sorted()
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}

// Max returns the largest index. ok is false if the Range is empty.
func (r Range) Max() (max uint, ok bool) {
	for l := range r.lines {
		if !ok || l > max {
			max = l
			ok = true
		}
	}
	return
}

func (r Range) Union(o Range) Range {
	res := Range{lines: make(map[uint]struct{}, len(r.lines)+len(o.lines))}
	for l := range r.lines {
		res.lines[l] = struct{}{}
	}
	for l := range o.lines {
		res.lines[l] = struct{}{}
	}
	return res
}

// Offset adds delta to every index using wrapping arithmetic.
func (r Range) Offset(delta int) Range {
	return r.mapLines(func(l uint) uint {
		return l + uint(delta)
	})
}

// Expand grows the Range by n lines in the direction given by the sign of n.
// Each index idx contributes idx-i (saturating at 0) for i in 0..-n when n is
// negative, and idx+i (wrapping) for i in 0..n otherwise.
func (r Range) Expand(n int) Range {
	res := Range{lines: make(map[uint]struct{})}
	if n < 0 {
		steps := uint(-n)
		for l := range r.lines {
			for i := uint(0); i <= steps; i++ {
				if i > l {
					res.lines[0] = struct{}{}
					break
				}
				res.lines[l-i] = struct{}{}
			}
		}
		return res
	}

	steps := uint(n)
	for l := range r.lines {
		for i := uint(0); i <= steps; i++ {
			res.lines[l+i] = struct{}{}
		}
	}
	return res
}

// ShiftedAt returns the Range as it is after a line was inserted at index at:
// every index greater than or equal to at moves down by one.
func (r Range) ShiftedAt(at uint) Range {
	return r.mapLines(func(l uint) uint {
		if l >= at {
			return l + 1
		}
		return l
	})
}

// InsertedAt is ShiftedAt, but if at was part of the Range the newly inserted
// line becomes part of it as well.
func (r Range) InsertedAt(at uint) Range {
	res := r.ShiftedAt(at)
	if r.Contains(at) {
		res.lines[at] = struct{}{}
	}
	return res
}

// RemovedAt returns the Range as it is after the line at index at was removed.
// The index at is dropped and every larger index moves up by one.
func (r Range) RemovedAt(at uint) Range {
	res := Range{lines: make(map[uint]struct{}, len(r.lines))}
	for l := range r.lines {
		switch {
		case l == at:
			continue
		case l > at:
			res.lines[l-1] = struct{}{}
		default:
			res.lines[l] = struct{}{}
		}
	}
	return res
}

func (r Range) Equal(o Range) bool {
	if len(r.lines) != len(o.lines) {
		return false
	}
	for l := range r.lines {
		if !o.Contains(l) {
			return false
		}
	}
	return true
}

func (r Range) String() string {
	var buf bytes.Buffer
	buf.WriteRune('{')
	for i, l := range r.Sorted() {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%d", l)
	}
	buf.WriteRune('}')
	return buf.String()
}

func (r Range) mapLines(f func(l uint) uint) Range {
	res := Range{lines: make(map[uint]struct{}, len(r.lines))}
	for l := range r.lines {
		res.lines[f(l)] = struct{}{}
	}
	return res
}
