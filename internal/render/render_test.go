package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xeniagda/red/internal/action"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		lines    []action.Line
		numbered bool
		expected string
	}{
		{
			name:     "plain",
			lines:    []action.Line{{Index: 0, Text: "a"}, {Index: 2, Text: "c"}},
			expected: "a\nc\n",
		},
		{
			name:     "numbered adjacent",
			lines:    []action.Line{{Index: 0, Text: "a"}, {Index: 1, Text: "b"}},
			numbered: true,
			expected: "0\ta\n1\tb\n",
		},
		{
			name:     "numbered with gap",
			lines:    []action.Line{{Index: 0, Text: "a"}, {Index: 1, Text: "b"}, {Index: 5, Text: "f"}},
			numbered: true,
			expected: "0\ta\n1\tb\n    ...\n5\tf\n",
		},
		{
			name:     "escape sequences stripped",
			lines:    []action.Line{{Index: 3, Text: "\x1b[31mred\x1b[0m"}},
			numbered: true,
			expected: "3\tred\n",
		},
		{
			name:     "empty",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(&out, &out, Options{})
			p.Lines("file.go", tc.lines, tc.numbered)
			assert.Equal(t, tc.expected, out.String())
		})
	}
}

func TestInfo(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out, Options{})
	p.Info("%d lines", 3)
	p.Info("done\n")
	assert.Equal(t, "3 lines\ndone\n", out.String())

	out.Reset()
	p.SetSilent(true)
	p.Info("%d lines", 3)
	p.Println("still printed")
	assert.Equal(t, "still printed\n", out.String())
	assert.True(t, p.Silent())
}

func TestError(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut, Options{})
	p.Error(errors.New("boom"))
	p.Warn("file %s changed", "x")
	assert.Empty(t, out.String())
	assert.Equal(t, "boom\nfile x changed\n", errOut.String())

	errOut.Reset()
	p = New(&out, &errOut, Options{Color: true})
	p.Error(errors.New("boom"))
	assert.Contains(t, errOut.String(), "\x1b[31m")
	assert.Contains(t, errOut.String(), "boom")
}

func TestColoredNumbers(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out, Options{Color: true, NumberColor: "yellow"})
	p.Lines("", []action.Line{{Index: 7, Text: "x"}}, true)
	assert.True(t, strings.HasPrefix(out.String(), "\x1b[33m7"))
	assert.True(t, strings.HasSuffix(out.String(), "\tx\n"))
}

func TestHighlight(t *testing.T) {
	h := newHighlighter("monokai")
	lines := []string{"package main", "", "func main() {}"}

	res := h.highlight("main.go", lines)
	assert.Len(t, res, len(lines))
	assert.Contains(t, res[0], "\x1b[")
	assert.Contains(t, res[0], "package")
	for _, l := range res {
		assert.NotContains(t, l, "\n")
	}

	assert.Equal(t, lines, h.highlight("", lines))
	assert.Equal(t, lines, h.highlight("unknown.nosuchext", lines))
}

func TestClear(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out, Options{})
	assert.NoError(t, p.Clear())
	assert.Contains(t, out.String(), "\x1b[2J")
}
