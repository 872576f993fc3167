package expr

import (
	"bytes"
	"fmt"
	"unicode"
)

// Scanner splits the address at the start of a line into tokens. Scanning
// stops at the first rune that cannot start an address token.
type Scanner struct {
	pos    int
	base   int
	input  []rune
	tokens []token
	errs   []error
}

type token struct {
	typ   tokenType
	value string
	// pos is the index of the rune in the input
	// where the token started
	pos int
}

func (t token) tokenType() tokenType {
	return t.typ
}

func (t token) String() string {
	if t.value == "" {
		return fmt.Sprintf("(%s)", t.typ)
	}
	return fmt.Sprintf("(%s, %s)", t.typ, t.value)
}

// Scan tokenizes the address at the start of input. end is the index of the
// first rune that is not part of the address.
func (s *Scanner) Scan(input []rune) (tokens []token, end int, ok bool) {
	s.input = input
	s.pos = 0
	s.tokens = make([]token, 0, 10)
	s.errs = make([]error, 0, 1)

	for s.next() {
	}
	return s.tokens, s.pos, len(s.errs) == 0
}

// SetBase sets the offset added to token positions, for input that does not
// start at the beginning of the line.
func (s *Scanner) SetBase(base int) {
	s.base = base
}

func (s *Scanner) next() bool {
	start := s.pos
	r := s.nextNonSpaceRune()
	if s.atEnd() {
		return false
	}

	tok := token{pos: s.base + s.pos}

	switch r {
	case '+':
		tok.typ = plusTok
	case '-':
		tok.typ = minusTok
	case '^':
		tok.typ = caretTok
	case '#':
		tok.typ = poundTok
	case '&':
		tok.typ = ampTok
	case '(':
		tok.typ = openGroupTok
	case ')':
		tok.typ = closeGroupTok
	case '$':
		tok.typ = dollarTok
	case '%':
		tok.typ = percentTok
	case '.':
		tok.typ = dotTok
	case '\'':
		s.pos++
		tok.typ = markTok
		tok.value = s.name()
		s.addToken(tok)
		return true
	case '/':
		s.pos++
		tok.typ = regexTok
		tok.value = s.str('/')
		s.addToken(tok)
		return true
	default:
		if !s.isValidNumRune(r) {
			// Not part of the address; leave any blanks for the commands.
			s.pos = start
			return false
		}
		tok.typ = numTok
		tok.value = s.num()
		s.addToken(tok)
		return true
	}

	s.pos++
	s.addToken(tok)
	return true
}

func (s *Scanner) nextNonSpaceRune() rune {
	var r rune
	for {
		if s.atEnd() {
			return 0
		}

		r = s.input[s.pos]
		if !unicode.IsSpace(r) {
			break
		}
		s.pos++
	}
	return r
}

// str reads delimited text up to the closing delim and consumes it. \delim
// stands for delim; other escapes are kept as they are.
func (s *Scanner) str(delim rune) string {
	var buf bytes.Buffer

	start := s.pos
	nextRuneEscaped := false
	for {
		if s.atEnd() {
			s.errs = append(s.errs, &ParseError{Pos: s.base + start - 1, Msg: fmt.Sprintf("missing closing '%c'", delim)})
			return buf.String()
		}

		r := s.input[s.pos]
		s.pos++

		if !nextRuneEscaped && r == delim {
			return buf.String()
		}

		if nextRuneEscaped && r != delim {
			buf.WriteRune('\\')
		}

		nextRuneEscaped = !nextRuneEscaped && r == '\\'

		if !nextRuneEscaped {
			buf.WriteRune(r)
		}
	}
}

// name reads a mark name. It ends at the first rune that is not a letter,
// digit or '_', so a command directly after a named mark needs a blank.
func (s *Scanner) name() string {
	var buf bytes.Buffer
	for !s.atEnd() && isNameRune(s.input[s.pos]) {
		buf.WriteRune(s.input[s.pos])
		s.pos++
	}
	return buf.String()
}

func (s *Scanner) num() string {
	var buf bytes.Buffer
	for !s.atEnd() && s.isValidNumRune(s.input[s.pos]) {
		buf.WriteRune(s.input[s.pos])
		s.pos++
	}
	return buf.String()
}

func (s *Scanner) isValidNumRune(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *Scanner) addToken(t token) {
	s.tokens = append(s.tokens, t)
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.input)
}

type tokenType int

const (
	nilTok tokenType = iota
	plusTok
	minusTok
	caretTok
	poundTok
	ampTok
	openGroupTok
	closeGroupTok
	dollarTok
	percentTok
	dotTok
	markTok
	regexTok
	numTok
)

func (t tokenType) String() string {
	switch t {
	case nilTok:
		return "nilTok"
	case plusTok:
		return "plusTok"
	case minusTok:
		return "minusTok"
	case caretTok:
		return "caretTok"
	case poundTok:
		return "poundTok"
	case ampTok:
		return "ampTok"
	case openGroupTok:
		return "openGroupTok"
	case closeGroupTok:
		return "closeGroupTok"
	case dollarTok:
		return "dollarTok"
	case percentTok:
		return "percentTok"
	case dotTok:
		return "dotTok"
	case markTok:
		return "markTok"
	case regexTok:
		return "regexTok"
	case numTok:
		return "numTok"
	}
	return "<unknown token>"
}
