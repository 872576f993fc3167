// Package session ties together the open buffers and the named registers
// shared between them.
package session

import (
	"fmt"
	"sort"

	"github.com/xeniagda/red/internal/buffer"
)

// Session holds the ordered list of open buffers and the registers. It always
// has at least one buffer.
type Session struct {
	buffers   []*buffer.Buffer
	current   int
	registers map[string][]string
}

func New() *Session {
	return &Session{
		buffers:   []*buffer.Buffer{buffer.New()},
		registers: make(map[string][]string),
	}
}

func (s *Session) Current() *buffer.Buffer {
	return s.buffers[s.current]
}

func (s *Session) CurrentIndex() int {
	return s.current
}

func (s *Session) Len() int {
	return len(s.buffers)
}

// Buffers returns the open buffers in order. The slice must not be modified.
func (s *Session) Buffers() []*buffer.Buffer {
	return s.buffers
}

// Switch makes buffer i the active one.
func (s *Session) Switch(i int) error {
	if i < 0 || i >= len(s.buffers) {
		return fmt.Errorf("%w: buffer %d (have %d)", buffer.ErrOutOfBounds, i, len(s.buffers))
	}
	s.current = i
	return nil
}

// Add appends b and makes it the active buffer.
func (s *Session) Add(b *buffer.Buffer) {
	s.buffers = append(s.buffers, b)
	s.current = len(s.buffers) - 1
}

// CloseCurrent removes the active buffer. The previous buffer becomes active,
// or the first one if the closed buffer was first. It returns false without
// doing anything if the active buffer is the only one.
func (s *Session) CloseCurrent() bool {
	if len(s.buffers) <= 1 {
		return false
	}
	s.buffers = append(s.buffers[:s.current], s.buffers[s.current+1:]...)
	if s.current > 0 {
		s.current--
	}
	return true
}

// Register returns the lines saved in register name.
func (s *Session) Register(name string) (lines []string, ok bool) {
	lines, ok = s.registers[buffer.NormalizeName(name)]
	return
}

// SetRegister replaces the content of register name.
func (s *Session) SetRegister(name string, lines []string) {
	s.registers[buffer.NormalizeName(name)] = lines
}

// RegisterNames returns the names of all registers in sorted order.
func (s *Session) RegisterNames() []string {
	names := make([]string, 0, len(s.registers))
	for n := range s.registers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
