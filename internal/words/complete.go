// Package words completes partially typed words from the text of the open
// buffers.
package words

import (
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/armon/go-radix"
)

type Completion struct {
	word    string
	sources []string
}

func (c Completion) Word() string {
	return c.word
}

func (c Completion) Sources() []string {
	return c.sources
}

// Completer indexes the words of several sources, usually one per buffer.
type Completer struct {
	tree    *radix.Tree
	sources map[string]struct{}
}

func NewCompleter() *Completer {
	return &Completer{
		tree:    radix.New(),
		sources: make(map[string]struct{}),
	}
}

func (c *Completer) Len() int {
	return c.tree.Len()
}

// Build deletes all completion information from the specified source from the tree,
// then replaces it with the words in lines.
func (c *Completer) Build(source string, lines []string) {
	c.DeleteAllFromSource(source)
	c.sources[source] = struct{}{}

	for _, l := range lines {
		for _, w := range wordsIn(l) {
			c.insert(w, source)
		}
	}
}

// Sources returns the names of all sources in sorted order.
func (c *Completer) Sources() []string {
	s := make([]string, 0, len(c.sources))
	for k := range c.sources {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

func (c *Completer) insert(word string, source string) {
	node, ok := c.tree.Get(word)
	if !ok {
		c.tree.Insert(word, &Completion{
			word:    word,
			sources: []string{source},
		})
		return
	}
	compl := node.(*Completion)
	if !slices.Contains(compl.sources, source) {
		compl.sources = append(compl.sources, source)
	}
}

func (c *Completer) DeleteAllFromSource(source string) {
	delete(c.sources, source)

	var toDelFromTree []string
	c.tree.Walk(func(s string, v interface{}) bool {
		compl := v.(*Completion)
		compl.sources = slices.DeleteFunc(compl.sources, func(e string) bool {
			return e == source
		})
		if len(compl.sources) == 0 {
			toDelFromTree = append(toDelFromTree, compl.word)
		}
		// walk all values
		return false
	})

	for _, v := range toDelFromTree {
		c.tree.Delete(v)
	}
}

// Completions returns the words that start with word, excluding word itself.
func (c *Completer) Completions(word string) (comps []Completion, commonPrefix string) {
	c.tree.WalkPrefix(word, func(s string, v interface{}) bool {
		if s != word {
			comps = append(comps, *v.(*Completion))
		}
		return false
	})

	strs := make([]string, len(comps))
	for i, s := range comps {
		strs[i] = s.word
	}
	commonPrefix = CommonPrefix(strs...)
	return
}

// Complete extends the word that ends at byte offset pos in line as far as
// all its completions agree. ok is false if there is nothing to add.
func (c *Completer) Complete(line string, pos int) (newLine string, newPos int, ok bool) {
	if pos < 0 || pos > len(line) {
		return
	}

	start := pos
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if !isWordChar(r) {
			break
		}
		start -= size
	}

	prefix := line[start:pos]
	if prefix == "" {
		return
	}

	_, common := c.Completions(prefix)
	if len(common) <= len(prefix) || !strings.HasPrefix(common, prefix) {
		return
	}

	newLine = line[:start] + common + line[pos:]
	return newLine, start + len(common), true
}

func CommonPrefix(s ...string) string {
	if len(s) == 0 {
		return ""
	}

	pfx := s[0]
	for _, c := range s[1:] {
		pfx = commonPrefix(pfx, c)
		if pfx == "" {
			break
		}
	}
	return pfx
}

func commonPrefix(s1, s2 string) string {
	r1 := []rune(s1)
	r2 := []rune(s2)

	n := min(len(r1), len(r2))
	i := 0
	for ; i < n; i++ {
		if r1[i] != r2[i] {
			break
		}
	}

	return string(r1[:i])
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func wordsIn(text string) (words []string) {
	var word strings.Builder

	pack := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
		}
		word.Reset()
	}

	for _, r := range text {
		if isWordChar(r) {
			word.WriteRune(r)
		} else {
			pack()
		}
	}
	pack()

	return
}
