package action

import (
	"errors"
	"fmt"

	"github.com/xeniagda/red/internal/buffer"
)

// ErrQuit is returned when closing the last buffer, which ends the session.
var ErrQuit = errors.New("quit")

type Kind int

const (
	OutOfBounds Kind = iota
	NoRange
	NoSuchRegister
	Regex
	IO
	Other
)

func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "out of bounds"
	case NoRange:
		return "no range"
	case NoSuchRegister:
		return "no such register"
	case Regex:
		return "bad regex"
	case IO:
		return "i/o error"
	case Other:
		return "error"
	}
	return "<unknown kind>"
}

// Error is a failure while applying an Action.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err if it is an *Error.
func KindOf(err error) (k Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return
}

func errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// bounds converts a buffer index error into an OutOfBounds Error.
func bounds(err error) error {
	if errors.Is(err, buffer.ErrOutOfBounds) {
		return &Error{Kind: OutOfBounds, Err: err}
	}
	return err
}
