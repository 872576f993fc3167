package expr

import (
	"fmt"
	"strconv"

	"github.com/xeniagda/red/internal/errs"
)

// Recursive Descent parser
// https://craftinginterpreters.com/parsing-expressions.html

type Parser struct {
	tokens  []token
	errors  errs.Errors
	current int
	// end is the position reported for errors at the end of the input
	end int
}

// Parse builds the tree for an address. A nil tree means that no address was
// given.
func (p *Parser) Parse(tokens []token, end int) (tree interface{}, err error) {
	p.tokens = tokens
	p.errors = errs.New()
	p.current = 0
	p.end = end
	return p.parse()
}

func (p *Parser) parse() (tree interface{}, err error) {
	if p.atEnd() {
		return
	}

	tree = p.rng()

	if p.errors.NilIfEmpty() == nil && !p.atEnd() {
		p.addErrorAtPositionf("unexpected %s in address", p.peek().typ)
	}
	err = p.errors.NilIfEmpty()
	if err != nil {
		tree = nil
	}
	return
}

func (p *Parser) rng() interface{} {
	l := p.term()
	if l == nil {
		return nil
	}

	for p.match(plusTok) {
		r := p.term()
		if r == nil {
			p.addErrorAtPositionf("expected address after '+'")
			return nil
		}
		l = complexAddr{op: '+', l: l, r: r}
	}
	return l
}

func (p *Parser) term() interface{} {
	a := p.primary()
	if a == nil {
		return nil
	}

	for {
		switch {
		case p.match(caretTok):
			n, ok := p.signedInt('^')
			if !ok {
				return nil
			}
			a = postfixAddr{op: '^', arg: n, a: a}
		case p.match(poundTok):
			n, ok := p.signedInt('#')
			if !ok {
				return nil
			}
			a = postfixAddr{op: '#', arg: n, a: a}
		case p.match(ampTok):
			a = postfixAddr{op: '&', a: a}
		default:
			return a
		}
	}
}

func (p *Parser) primary() interface{} {
	if !p.match(openGroupTok) {
		return p.atom()
	}

	r := p.rng()
	if r == nil {
		if len(p.errors) == 0 {
			p.addErrorAtPositionf("expected address after '('")
		}
		return nil
	}

	if !p.match(closeGroupTok) {
		p.addErrorAtPositionf("missing closing ')'")
		return nil
	}
	return r
}

func (p *Parser) atom() interface{} {
	switch {
	case p.match(regexTok):
		return simpleAddr{typ: regexAddrType, str: p.previous().value}
	case p.match(percentTok):
		return simpleAddr{typ: allAddrType}
	case p.match(dotTok):
		return simpleAddr{typ: dotAddrType}
	case p.match(markTok):
		return simpleAddr{typ: markAddrType, str: p.previous().value}
	}

	l := p.addr()
	if l == nil {
		return nil
	}

	if !p.match(minusTok) {
		return l
	}

	r := p.addr()
	if r == nil {
		p.addErrorAtPositionf("expected line or '$' after '-'")
		return nil
	}
	return complexAddr{op: '-', l: l, r: r}
}

func (p *Parser) addr() interface{} {
	var a interface{}

	switch {
	case p.match(numTok):
		v, err := strconv.ParseUint(p.previous().value, 10, 0)
		if err != nil {
			p.addErrorAtPositionf("bad line number %s", p.previous().value)
			return nil
		}
		a = simpleAddr{typ: lineAddrType, val: uint(v)}
	case p.match(dollarTok):
		a = simpleAddr{typ: endAddrType}
	default:
		return nil
	}

	for p.check(caretTok) && p.checkSignedIntAfter() {
		p.advance()
		n, ok := p.signedInt('^')
		if !ok {
			return nil
		}
		a = postfixAddr{op: '^', arg: n, a: a}
	}
	return a
}

func (p *Parser) signedInt(after rune) (n int, ok bool) {
	neg := p.match(minusTok)
	if !p.match(numTok) {
		p.addErrorAtPositionf("expected number after '%c'", after)
		return 0, false
	}

	s := p.previous().value
	if neg {
		s = "-" + s
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.addErrorAtPositionf("bad number %s", s)
		return 0, false
	}
	return n, true
}

// checkSignedIntAfter reports whether the token after the current one starts
// a number.
func (p *Parser) checkSignedIntAfter() bool {
	i := p.current + 1
	if i < len(p.tokens) && p.tokens[i].typ == minusTok {
		i++
	}
	return i < len(p.tokens) && p.tokens[i].typ == numTok
}

func (p *Parser) match(types ...tokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(typ tokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().tokenType() == typ
}

func (p *Parser) advance() token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token {
	return p.tokens[p.current-1]
}

func (p *Parser) atEnd() bool {
	return p.current >= len(p.tokens)
}

func (p *Parser) runePosition() int {
	if p.atEnd() {
		return p.end
	}
	return p.peek().pos
}

func (p *Parser) addErrorAtPositionf(msg string, args ...interface{}) {
	p.errors.Add(&ParseError{Pos: p.runePosition(), Msg: fmt.Sprintf(msg, args...)})
}

type simpleAddr struct {
	typ simpleAddrType
	val uint
	str string
}

type simpleAddrType int

const (
	lineAddrType simpleAddrType = iota
	endAddrType
	allAddrType
	dotAddrType
	markAddrType
	regexAddrType
)

func (s simpleAddrType) String() string {
	switch s {
	case lineAddrType:
		return "lineAddrType"
	case endAddrType:
		return "endAddrType"
	case allAddrType:
		return "allAddrType"
	case dotAddrType:
		return "dotAddrType"
	case markAddrType:
		return "markAddrType"
	case regexAddrType:
		return "regexAddrType"
	default:
		return "?"
	}
}

// complexAddr is a binary address: '+' for union and '-' for a span.
type complexAddr struct {
	l, r interface{}
	op   rune
}

// postfixAddr applies '^', '#' or '&' to a.
type postfixAddr struct {
	a   interface{}
	op  rune
	arg int
}
