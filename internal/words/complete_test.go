package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordsIn(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "word",
			input:    "word",
			expected: []string{"word"},
		},
		{
			name:     "a word",
			input:    "a word",
			expected: []string{"a", "word"},
		},
		{
			name:     "wandering",
			input:    "I wandered the world; for a time, at least. Oblivious to the pressures---and reality---of the order. ",
			expected: []string{"I", "wandered", "the", "world", "for", "a", "time", "at", "least", "Oblivious", "to", "the", "pressures", "and", "reality", "of", "the", "order"},
		},
		{
			name:     "identifiers",
			input:    "ident_1 ident_word",
			expected: []string{"ident_1", "ident_word"},
		},
		{
			name:     "empty",
			input:    " ;; ",
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, wordsIn(tc.input))
		})
	}
}

func TestCommonPrefix(t *testing.T) {
	testCommonPrefixFn := func(s1, s2, result string) {
		r := commonPrefix(s1, s2)
		if r != result {
			t.Fatalf("for common prefix begween '%s' and '%s' expected '%s' but got '%s'", s1, s2, result, r)
		}
	}

	testCommonPrefixFn("cat", "rat", "")
	testCommonPrefixFn("", "rat", "")
	testCommonPrefixFn("", "", "")
	testCommonPrefixFn("hello", "heck", "he")
	testCommonPrefixFn("fellow", "fell", "fell")
	testCommonPrefixFn("fell", "fellow", "fell")

	assert.Equal(t, "", CommonPrefix())
	assert.Equal(t, "abc", CommonPrefix("abc"))
	assert.Equal(t, "ab", CommonPrefix("abc", "abd", "abe"))
}

func TestSources(t *testing.T) {
	c := NewCompleter()
	c.Build("one", []string{"alpha beta"})
	c.Build("two", []string{"beta gamma"})
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"one", "two"}, c.Sources())

	comps, _ := c.Completions("be")
	assert.Len(t, comps, 1)
	assert.ElementsMatch(t, []string{"one", "two"}, comps[0].Sources())

	c.DeleteAllFromSource("one")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"two"}, c.Sources())

	c.Build("two", []string{"delta"})
	assert.Equal(t, 1, c.Len())
}

func TestComplete(t *testing.T) {
	c := NewCompleter()
	c.Build("buf", []string{"function functional fun", "variable", "fold folk"})

	tests := []struct {
		name     string
		line     string
		pos      int
		expected string
		newPos   int
		ok       bool
	}{
		{name: "unique", line: "s/var", pos: 5, expected: "s/variable", newPos: 10, ok: true},
		{name: "shortest word", line: "fu", pos: 2, expected: "fun", newPos: 3, ok: true},
		{name: "common prefix", line: "fun", pos: 3, expected: "function", newPos: 8, ok: true},
		{name: "longer word", line: "function", pos: 8, expected: "functional", newPos: 10, ok: true},
		{name: "middle of line", line: "I va p", pos: 4, expected: "I variable p", newPos: 10, ok: true},
		{name: "ambiguous", line: "fol", pos: 3, ok: false},
		{name: "no word", line: "1 ", pos: 2, ok: false},
		{name: "unknown", line: "xyz", pos: 3, ok: false},
		{name: "bad position", line: "fu", pos: 7, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line, pos, ok := c.Complete(tc.line, tc.pos)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, line)
				assert.Equal(t, tc.newPos, pos)
			}
		})
	}
}
