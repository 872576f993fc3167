package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/armon/go-radix"

	"github.com/xeniagda/red/internal/action"
	"github.com/xeniagda/red/internal/buffer"
)

type commandFunc func(p *cmdParser) (action.Action, error)

// commands maps each command name to its parser. Names are looked up by
// longest prefix, so "pa" wins over "p" and "cl" over "c".
var commands = radix.New()

func init() {
	for name, f := range map[string]commandFunc{
		"d":  func(p *cmdParser) (action.Action, error) { return action.Delete{Register: p.name()}, nil },
		"y":  func(p *cmdParser) (action.Action, error) { return action.Yank{Register: p.name()}, nil },
		"pa": func(p *cmdParser) (action.Action, error) { return action.Paste{Register: p.name()}, nil },
		"i":  func(p *cmdParser) (action.Action, error) { return action.Insert{}, nil },
		"a":  func(p *cmdParser) (action.Action, error) { return action.Append{}, nil },
		"I":  func(p *cmdParser) (action.Action, error) { return action.Prefix{Text: p.rest()}, nil },
		"A":  func(p *cmdParser) (action.Action, error) { return action.Suffix{Text: p.rest()}, nil },
		"c":  func(p *cmdParser) (action.Action, error) { return action.Change{}, nil },
		"t":  parseCopy,
		"s":  parseSubstitute,
		"p":  func(p *cmdParser) (action.Action, error) { return action.Print{Numbered: true}, nil },
		"P":  func(p *cmdParser) (action.Action, error) { return action.Print{}, nil },
		"r":  parseShowRegisters,
		"m":  func(p *cmdParser) (action.Action, error) { return action.SetMark{Name: p.name()}, nil },
		"cl": func(p *cmdParser) (action.Action, error) { return action.Clear{}, nil },
		"bl": func(p *cmdParser) (action.Action, error) { return action.ListBuffers{}, nil },
		"bn": func(p *cmdParser) (action.Action, error) { return action.NewBuffer{Path: p.path()}, nil },
		"bc": parseSwitchBuffer,
		"bd": func(p *cmdParser) (action.Action, error) { return action.CloseBuffer{Force: p.force()}, nil },
		"bq": func(p *cmdParser) (action.Action, error) { return action.CloseBuffer{Force: p.force()}, nil },
		"w":  func(p *cmdParser) (action.Action, error) { return action.Write{Path: p.path()}, nil },
		"e": func(p *cmdParser) (action.Action, error) {
			force := p.force()
			return action.Edit{Force: force, Path: p.path()}, nil
		},
	} {
		commands.Insert(name, f)
	}
}

// CommandNames returns the names of all commands in sorted order.
func CommandNames() []string {
	var names []string
	commands.Walk(func(s string, v interface{}) bool {
		names = append(names, s)
		return false
	})
	return names
}

// ParseCommand parses the command at the start of text. Leading blanks are
// skipped. rest is the text following the command. Commands that take an
// address evaluate it against b.
func ParseCommand(text string, b *buffer.Buffer, tabWidth int) (a action.Action, rest string, err error) {
	p := cmdParser{input: []rune(text), buf: b, tabWidth: tabWidth}
	a, err = p.parse()
	return a, string(p.input[p.pos:]), err
}

type cmdParser struct {
	input    []rune
	pos      int
	base     int
	buf      *buffer.Buffer
	tabWidth int
}

func (p *cmdParser) parse() (action.Action, error) {
	p.skipBlanks()
	if p.atEnd() {
		return nil, p.errorf("expected command")
	}

	name, v, ok := commands.LongestPrefix(string(p.input[p.pos:]))
	if !ok {
		return nil, p.errorf("unknown command %q", p.input[p.pos])
	}
	p.pos += len([]rune(name))

	dbg("cmdParser.parse: command %s", name)
	return v.(commandFunc)(p)
}

// name consumes the run of non-blank runes after a command.
func (p *cmdParser) name() string {
	start := p.pos
	for !p.atEnd() && !unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
	return string(p.input[start:p.pos])
}

// rest consumes the remainder of the line.
func (p *cmdParser) rest() string {
	s := string(p.input[p.pos:])
	p.pos = len(p.input)
	return s
}

// path consumes the remainder of the line without surrounding blanks.
func (p *cmdParser) path() string {
	return strings.TrimSpace(p.rest())
}

// force consumes a '!' directly after the command.
func (p *cmdParser) force() bool {
	if !p.atEnd() && p.input[p.pos] == '!' {
		p.pos++
		return true
	}
	return false
}

func (p *cmdParser) skipBlanks() {
	for !p.atEnd() && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

// delimited consumes text up to an unescaped '/' and the '/' itself. \/
// stands for a slash. closed is false if the line ended first.
func (p *cmdParser) delimited() (text string, closed bool) {
	var buf strings.Builder
	escaped := false
	for !p.atEnd() {
		r := p.input[p.pos]
		p.pos++

		if !escaped && r == '/' {
			return buf.String(), true
		}
		if escaped && r != '/' {
			buf.WriteRune('\\')
		}
		escaped = !escaped && r == '\\'
		if !escaped {
			buf.WriteRune(r)
		}
	}
	if escaped {
		buf.WriteRune('\\')
	}
	return buf.String(), false
}

func (p *cmdParser) atEnd() bool {
	return p.pos >= len(p.input)
}

func (p *cmdParser) errorf(msg string, args ...interface{}) error {
	return &ParseError{Pos: p.base + p.pos, Msg: fmt.Sprintf(msg, args...)}
}

func parseCopy(p *cmdParser) (action.Action, error) {
	r, end, err := parseAddress(p.input[p.pos:], p.base+p.pos, p.buf, p.tabWidth)
	if err != nil {
		return nil, err
	}
	p.pos += end
	return action.Copy{To: r}, nil
}

func parseSubstitute(p *cmdParser) (action.Action, error) {
	if p.atEnd() || p.input[p.pos] != '/' {
		return nil, p.errorf("expected '/' after 's'")
	}
	p.pos++

	pattern, closed := p.delimited()
	if !closed {
		return nil, p.errorf("expected '/' after 's/%s'", pattern)
	}
	replacement, _ := p.delimited()
	return action.Substitute{Pattern: pattern, Replacement: replacement}, nil
}

func parseShowRegisters(p *cmdParser) (action.Action, error) {
	name := p.name()
	if name == "" {
		return action.ShowRegisters{All: true}, nil
	}
	return action.ShowRegisters{Name: name}, nil
}

func parseSwitchBuffer(p *cmdParser) (action.Action, error) {
	p.skipBlanks()
	start := p.pos
	for !p.atEnd() && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return nil, p.errorf("expected buffer number after 'bc'")
	}

	n, err := strconv.Atoi(string(p.input[start:p.pos]))
	if err != nil {
		return nil, p.errorf("bad buffer number %s", string(p.input[start:p.pos]))
	}
	return action.SwitchBuffer{Index: n}, nil
}
