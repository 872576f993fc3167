package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/xeniagda/red/internal/cache"
)

// lexerCacheSize bounds how many filenames remember their lexer.
const lexerCacheSize = 32

type highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	lexers    *cache.Cache[string, chroma.Lexer]
}

func newHighlighter(style string) *highlighter {
	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}
	return &highlighter{
		style:     styles.Get(style),
		formatter: f,
		lexers:    cache.New[string, chroma.Lexer](lexerCacheSize),
	}
}

// lexer returns the lexer for filename, or nil if there is none.
func (h *highlighter) lexer(filename string) chroma.Lexer {
	if l, ok := h.lexers.Get(filename); ok {
		return l
	}
	l := lexers.Match(filename)
	if l != nil {
		l = chroma.Coalesce(l)
	}
	h.lexers.Set(filename, l)
	return l
}

// highlight colors lines using the lexer chosen by filename. The lines are
// tokenised together so multi-line constructs are recognised. If no lexer
// matches, or anything goes wrong, the lines are returned as they are.
func (h *highlighter) highlight(filename string, lines []string) []string {
	if filename == "" || len(lines) == 0 {
		return lines
	}
	lexer := h.lexer(filename)
	if lexer == nil {
		return lines
	}

	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return lines
	}
	tokenLines := chroma.SplitTokensIntoLines(it.Tokens())
	if len(tokenLines) < len(lines) {
		return lines
	}

	res := make([]string, len(lines))
	for i := range lines {
		var buf strings.Builder
		err := h.formatter.Format(&buf, h.style, chroma.Literator(trimNewline(tokenLines[i])...))
		if err != nil {
			return lines
		}
		res[i] = strings.TrimRight(buf.String(), "\n")
	}
	return res
}

func trimNewline(tokens []chroma.Token) []chroma.Token {
	res := make([]chroma.Token, 0, len(tokens))
	for _, t := range tokens {
		t.Value = strings.TrimSuffix(t.Value, "\n")
		if t.Value != "" {
			res = append(res, t)
		}
	}
	return res
}
