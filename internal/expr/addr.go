package expr

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/sarpdag/boyermoore"

	"github.com/xeniagda/red/internal/buffer"
	"github.com/xeniagda/red/internal/errs"
)

// ParseAddress parses the address at the start of text and evaluates it
// against b. rest is the text following the address. If text does not start
// with an address the result is the cursor of b.
func ParseAddress(text string, b *buffer.Buffer, tabWidth int) (r buffer.Range, rest string, err error) {
	input := []rune(text)
	r, end, err := parseAddress(input, 0, b, tabWidth)
	return r, string(input[end:]), err
}

func parseAddress(input []rune, base int, b *buffer.Buffer, tabWidth int) (r buffer.Range, end int, err error) {
	var s Scanner
	s.SetBase(base)
	tokens, end, ok := s.Scan(input)
	if !ok {
		return r, end, errs.Errors(s.errs)
	}
	dbg("parseAddress: tokens %v", tokens)

	var p Parser
	tree, err := p.Parse(tokens, base+end)
	if err != nil {
		return r, end, err
	}
	if tree == nil {
		return b.Cursor, end, nil
	}

	r, err = evaluator{buf: b, tabWidth: tabWidth}.eval(tree)
	dbg("parseAddress: %#v evaluated to %s", tree, r)
	return r, end, err
}

type evaluator struct {
	buf      *buffer.Buffer
	tabWidth int
}

func (e evaluator) eval(n interface{}) (r buffer.Range, err error) {
	switch a := n.(type) {
	case simpleAddr:
		return e.evalSimple(a)
	case complexAddr:
		if a.op == '-' {
			return e.span(a)
		}
		l, err := e.eval(a.l)
		if err != nil {
			return r, err
		}
		rr, err := e.eval(a.r)
		if err != nil {
			return r, err
		}
		return l.Union(rr), nil
	case postfixAddr:
		r, err = e.eval(a.a)
		if err != nil {
			return
		}
		switch a.op {
		case '^':
			return r.Offset(a.arg), nil
		case '#':
			return r.Expand(e.clampExpansion(a.arg)), nil
		case '&':
			return e.buf.BlockRange(r, e.tabWidth), nil
		}
	}
	return r, fmt.Errorf("unexpected address node %#v", n)
}

func (e evaluator) evalSimple(a simpleAddr) (r buffer.Range, err error) {
	switch a.typ {
	case lineAddrType, endAddrType:
		i, err := e.index(a)
		if err != nil {
			return r, err
		}
		return buffer.NewRange(i), nil
	case allAddrType:
		return buffer.Span(0, e.last()), nil
	case dotAddrType:
		return e.buf.Cursor, nil
	case markAddrType:
		r, ok := e.buf.Mark(a.str)
		if !ok {
			return r, &AddressError{Msg: fmt.Sprintf("no mark %s", buffer.NormalizeName(a.str))}
		}
		return r, nil
	case regexAddrType:
		return e.search(a.str)
	}
	return r, fmt.Errorf("unexpected address type %s", a.typ)
}

// index evaluates an address that denotes a single line.
func (e evaluator) index(n interface{}) (uint, error) {
	switch a := n.(type) {
	case simpleAddr:
		switch a.typ {
		case lineAddrType:
			return a.val, nil
		case endAddrType:
			return e.last(), nil
		}
	case postfixAddr:
		if a.op == '^' {
			i, err := e.index(a.a)
			return i + uint(a.arg), err
		}
	}
	return 0, fmt.Errorf("address %#v is not a single line", n)
}

// span evaluates l-r. The end is limited to one past the last line, so a
// span reaching past the buffer still fails when it is used.
func (e evaluator) span(a complexAddr) (r buffer.Range, err error) {
	start, err := e.index(a.l)
	if err != nil {
		return
	}
	end, err := e.index(a.r)
	if err != nil {
		return
	}
	end = min(end, max(start, uint(e.buf.Len())))
	return buffer.Span(start, end), nil
}

// clampExpansion limits #n to one line past the end of the buffer in either
// direction, so the Range stays proportional to the buffer.
func (e evaluator) clampExpansion(n int) int {
	limit := e.buf.Len() + 1
	return max(-limit, min(n, limit))
}

func (e evaluator) last() uint {
	return uint(e.buf.Len() - 1)
}

const regexMetaChars = `\.+*?()|[]{}^$`

// search returns the lines matching pattern. Patterns without
// metacharacters are matched as plain text.
func (e evaluator) search(pattern string) (r buffer.Range, err error) {
	lines := e.buf.Lines()
	var match []uint

	if pattern != "" && !strings.ContainsAny(pattern, regexMetaChars) {
		needle := []byte(pattern)
		for i, l := range lines {
			if boyermoore.Index([]byte(l), needle) >= 0 {
				match = append(match, uint(i))
			}
		}
		return buffer.NewRange(match...), nil
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return r, &AddressError{Msg: fmt.Sprintf("bad regex /%s/", pattern), Err: err}
	}
	for i, l := range lines {
		ok, err := re.MatchString(l)
		if err != nil {
			return r, &AddressError{Msg: fmt.Sprintf("matching /%s/", pattern), Err: err}
		}
		if ok {
			match = append(match, uint(i))
		}
	}
	return buffer.NewRange(match...), nil
}
