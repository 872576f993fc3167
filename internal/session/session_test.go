package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xeniagda/red/internal/buffer"
)

func named(name string) *buffer.Buffer {
	b := buffer.New()
	b.Filename = name
	return b
}

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, []string{""}, s.Current().Lines())
	assert.Empty(t, s.RegisterNames())
}

func TestSwitch(t *testing.T) {
	s := New()
	s.Add(named("b"))
	assert.Equal(t, 1, s.CurrentIndex())

	assert.NoError(t, s.Switch(0))
	assert.Equal(t, 0, s.CurrentIndex())

	for _, i := range []int{-1, 2} {
		err := s.Switch(i)
		if !errors.Is(err, buffer.ErrOutOfBounds) {
			t.Fatalf("Switch(%d): expected out of bounds, got %v", i, err)
		}
		assert.Equal(t, 0, s.CurrentIndex())
	}
}

func TestCloseCurrent(t *testing.T) {
	tests := []struct {
		name      string
		buffers   int
		current   int
		ok        bool
		remaining []string
		expected  int
	}{
		{name: "only buffer", buffers: 1, current: 0, ok: false, remaining: []string{"0"}, expected: 0},
		{name: "first", buffers: 3, current: 0, ok: true, remaining: []string{"1", "2"}, expected: 0},
		{name: "middle", buffers: 3, current: 1, ok: true, remaining: []string{"0", "2"}, expected: 0},
		{name: "last", buffers: 3, current: 2, ok: true, remaining: []string{"0", "1"}, expected: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			s.Current().Filename = "0"
			for i := 1; i < tc.buffers; i++ {
				s.Add(named(string(rune('0' + i))))
			}
			assert.NoError(t, s.Switch(tc.current))

			assert.Equal(t, tc.ok, s.CloseCurrent())

			var names []string
			for _, b := range s.Buffers() {
				names = append(names, b.Filename)
			}
			assert.Equal(t, tc.remaining, names)
			assert.Equal(t, tc.expected, s.CurrentIndex())
		})
	}
}

func TestRegisters(t *testing.T) {
	s := New()
	s.SetRegister("", []string{"a"})
	s.SetRegister("x", []string{"b", "c"})

	l, ok := s.Register(buffer.DefaultName)
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, l)

	_, ok = s.Register("nope")
	assert.False(t, ok)

	s.SetRegister("x", []string{"d"})
	l, _ = s.Register("x")
	assert.Equal(t, []string{"d"}, l)
	assert.Equal(t, []string{"'", "x"}, s.RegisterNames())
}
