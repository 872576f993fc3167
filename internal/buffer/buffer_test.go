package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBuffer(lines ...string) *Buffer {
	b := New()
	b.SetLines(lines)
	return b
}

func TestNew(t *testing.T) {
	b := New()
	assert.Equal(t, []string{""}, b.Lines())
	assert.True(t, b.Saved)
	assert.True(t, b.Cursor.IsEmpty())
	assert.Equal(t, "", b.Filename)
}

func TestInsertLineKeepsSelections(t *testing.T) {
	b := newBuffer("a", "b", "c", "d")
	b.Cursor = NewRange(1, 3)
	b.SetMark("x", NewRange(0, 2))

	err := b.InsertLine(2, "new")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "new", "c", "d"}, b.Lines())
	assert.Equal(t, []uint{1, 4}, b.Cursor.Sorted())

	m, ok := b.Mark("x")
	assert.True(t, ok)
	assert.Equal(t, []uint{0, 2, 3}, m.Sorted())

	// The text each index refers to is unchanged.
	for _, i := range b.Cursor.Sorted() {
		l, err := b.Line(i)
		assert.NoError(t, err)
		assert.Contains(t, []string{"b", "d"}, l)
	}
}

func TestRemoveLineKeepsSelections(t *testing.T) {
	b := newBuffer("a", "b", "c", "d")
	b.Cursor = NewRange(1, 3)
	b.SetMark("", NewRange(1))

	text, err := b.RemoveLine(1)
	assert.NoError(t, err)
	assert.Equal(t, "b", text)
	assert.Equal(t, []string{"a", "c", "d"}, b.Lines())
	assert.Equal(t, []uint{2}, b.Cursor.Sorted())

	m, ok := b.Mark(DefaultName)
	assert.True(t, ok)
	assert.True(t, m.IsEmpty())
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name string
		op   func(b *Buffer) error
	}{
		{
			name: "read past end",
			op: func(b *Buffer) error {
				_, err := b.Line(2)
				return err
			},
		},
		{
			name: "set past end",
			op:   func(b *Buffer) error { return b.SetLine(2, "x") },
		},
		{
			name: "insert beyond append position",
			op:   func(b *Buffer) error { return b.InsertLine(3, "x") },
		},
		{
			name: "remove past end",
			op: func(b *Buffer) error {
				_, err := b.RemoveLine(5)
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newBuffer("a", "b")
			err := tc.op(b)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected out of bounds error, got %v", err)
			}
		})
	}
}

func TestInsertAppend(t *testing.T) {
	b := newBuffer("a")
	assert.NoError(t, b.InsertLine(1, "b"))
	assert.Equal(t, []string{"a", "b"}, b.Lines())
}

func TestSetLinesEmpty(t *testing.T) {
	b := newBuffer("a", "b")
	b.Cursor = NewRange(1)
	b.SetMark("m", NewRange(0))
	b.SetLines(nil)

	assert.Equal(t, []string{""}, b.Lines())
	assert.True(t, b.Cursor.IsEmpty())
	assert.Empty(t, b.MarkNames())
}

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "empty", lines: []string{""}},
		{name: "plain", lines: []string{"a", "b"}},
		{name: "trailing empty line", lines: []string{"a", ""}},
		{name: "blank lines", lines: []string{"", "", "x", ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newBuffer(tc.lines...)
			assert.Equal(t, tc.lines, SplitText(b.Text()))
		})
	}
}

func TestMarkNames(t *testing.T) {
	b := New()
	b.SetMark("z", Range{})
	b.SetMark("", Range{})
	b.SetMark("a", Range{})
	assert.Equal(t, []string{"'", "a", "z"}, b.MarkNames())
}
