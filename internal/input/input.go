// Package input supplies command lines, either from a queue of scripted
// commands or from the user.
package input

// Source supplies lines one at a time. It returns io.EOF when there are no
// more lines.
type Source interface {
	ReadLine(prompt string) (string, error)
}
