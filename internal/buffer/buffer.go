// Package buffer holds a single document being edited: its lines, the cursor
// and the named marks that refer into it.
package buffer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultName is the name used for a mark or register when none is given.
const DefaultName = "'"

var ErrOutOfBounds = errors.New("index out of range")

// NormalizeName maps the empty name to DefaultName.
func NormalizeName(name string) string {
	if name == "" {
		return DefaultName
	}
	return name
}

// Buffer is one document. Every structural edit goes through InsertLine and
// RemoveLine so that the cursor and all marks stay in the buffer's current
// index space.
type Buffer struct {
	lines    []string
	Cursor   Range
	marks    map[string]Range
	Filename string
	Saved    bool
}

func New() *Buffer {
	return &Buffer{
		lines: []string{""},
		Saved: true,
	}
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

// Lines returns a copy of the buffer's lines.
func (b *Buffer) Lines() []string {
	l := make([]string, len(b.lines))
	copy(l, b.lines)
	return l
}

func (b *Buffer) Line(i uint) (string, error) {
	if i >= uint(len(b.lines)) {
		return "", b.outOfBounds(i)
	}
	return b.lines[i], nil
}

func (b *Buffer) SetLine(i uint, text string) error {
	if i >= uint(len(b.lines)) {
		return b.outOfBounds(i)
	}
	b.lines[i] = text
	return nil
}

// InsertLine inserts text so that it becomes line at. at may equal Len() to
// append.
func (b *Buffer) InsertLine(at uint, text string) error {
	if at > uint(len(b.lines)) {
		return b.outOfBounds(at)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[at+1:], b.lines[at:])
	b.lines[at] = text

	b.Cursor = b.Cursor.InsertedAt(at)
	for name, r := range b.marks {
		b.marks[name] = r.InsertedAt(at)
	}
	return nil
}

// RemoveLine removes line at and returns its text.
func (b *Buffer) RemoveLine(at uint) (string, error) {
	if at >= uint(len(b.lines)) {
		return "", b.outOfBounds(at)
	}
	text := b.lines[at]
	b.lines = append(b.lines[:at], b.lines[at+1:]...)

	b.Cursor = b.Cursor.RemovedAt(at)
	for name, r := range b.marks {
		b.marks[name] = r.RemovedAt(at)
	}
	return text, nil
}

// SetLines replaces the whole content of the buffer. The cursor and marks
// are cleared since they no longer refer to anything meaningful. An empty
// slice leaves a single empty line.
func (b *Buffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = lines
	b.Cursor = Range{}
	b.marks = nil
}

// EnsureLine makes sure the buffer has at least one line.
func (b *Buffer) EnsureLine() {
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
}

func (b *Buffer) Mark(name string) (r Range, ok bool) {
	r, ok = b.marks[NormalizeName(name)]
	return
}

func (b *Buffer) SetMark(name string, r Range) {
	if b.marks == nil {
		b.marks = make(map[string]Range)
	}
	b.marks[NormalizeName(name)] = r
}

// MarkNames returns the names of all marks in sorted order.
func (b *Buffer) MarkNames() []string {
	names := make([]string, 0, len(b.marks))
	for n := range b.marks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Text returns the lines joined by a single line feed, with no trailing
// terminator.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// SplitText is the inverse of Text: it splits on every line feed, so a
// trailing line feed yields a final empty line and a document survives a
// write and load unchanged.
func SplitText(text string) []string {
	return strings.Split(text, "\n")
}

func (b *Buffer) outOfBounds(i uint) error {
	return fmt.Errorf("%w: line %d (buffer has %d lines)", ErrOutOfBounds, i, len(b.lines))
}
