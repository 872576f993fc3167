package input

import (
	"io"
	"strings"
)

// Backlog is a queue of scripted lines that is read before falling back to
// another Source.
type Backlog struct {
	lines    []string
	fallback Source
	scripted bool
	// Echo, if set, is called with every line taken from the queue.
	Echo func(prompt, line string)
}

func NewBacklog(fallback Source) *Backlog {
	return &Backlog{fallback: fallback}
}

// Push splits cmds on unescaped ';' and queues the parts.
func (b *Backlog) Push(cmds string) {
	b.lines = append(b.lines, SplitEscaped(cmds, ';', '\\')...)
}

// PushLine queues line as it is.
func (b *Backlog) PushLine(line string) {
	b.lines = append(b.lines, line)
}

func (b *Backlog) Len() int {
	return len(b.lines)
}

// ReadLine returns the next queued line, or reads from the fallback when the
// queue is empty.
func (b *Backlog) ReadLine(prompt string) (string, error) {
	if line, ok := b.pop(prompt); ok {
		b.scripted = true
		return line, nil
	}
	b.scripted = false
	if b.fallback == nil {
		return "", io.EOF
	}
	return b.fallback.ReadLine(prompt)
}

// Scripted reports whether the last line returned by ReadLine came from the
// queue.
func (b *Backlog) Scripted() bool {
	return b.scripted
}

// QueueOnly returns a Source that reads from the queue and reports io.EOF
// once it is empty, without falling back.
func (b *Backlog) QueueOnly() Source {
	return queueOnly{b}
}

type queueOnly struct {
	b *Backlog
}

func (q queueOnly) ReadLine(prompt string) (string, error) {
	if line, ok := q.b.pop(prompt); ok {
		return line, nil
	}
	return "", io.EOF
}

func (b *Backlog) pop(prompt string) (string, bool) {
	if len(b.lines) == 0 {
		return "", false
	}
	line := b.lines[0]
	b.lines = b.lines[1:]
	if b.Echo != nil {
		b.Echo(prompt, line)
	}
	return line, true
}

// SplitEscaped splits s on every sep that is not preceded by escape. An
// escape before sep or before another escape stands for that rune; any other
// escape is kept as it is.
func SplitEscaped(s string, sep, escape rune) []string {
	var res []string
	var chunk strings.Builder

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == escape:
			if i+1 >= len(runes) {
				chunk.WriteRune(r)
				continue
			}
			i++
			next := runes[i]
			if next != sep && next != escape {
				chunk.WriteRune(r)
			}
			chunk.WriteRune(next)
		case r == sep:
			res = append(res, chunk.String())
			chunk.Reset()
		default:
			chunk.WriteRune(r)
		}
	}

	return append(res, chunk.String())
}
