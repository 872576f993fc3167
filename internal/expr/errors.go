package expr

import "fmt"

// ParseError is a syntax error in a command line. Pos is the index of the
// rune where it was detected.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at character %d: %s", e.Pos+1, e.Msg)
}

// AddressError is an address that is well formed but cannot be evaluated,
// such as an unknown mark or an invalid regular expression.
type AddressError struct {
	Msg string
	Err error
}

func (e *AddressError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AddressError) Unwrap() error {
	return e.Err
}
