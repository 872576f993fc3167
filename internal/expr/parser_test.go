package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseTree(input string) (interface{}, error) {
	var s Scanner
	tokens, end, _ := s.Scan([]rune(input))
	var p Parser
	return p.Parse(tokens, end)
}

func TestParser(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected interface{}
		ok       bool
		error    string
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
			ok:       true,
		},
		{
			name:     "line",
			input:    "12",
			expected: simpleAddr{typ: lineAddrType, val: 12},
			ok:       true,
		},
		{
			name:  "span",
			input: "1-$",
			expected: complexAddr{
				op: '-',
				l:  simpleAddr{typ: lineAddrType, val: 1},
				r:  simpleAddr{typ: endAddrType},
			},
			ok: true,
		},
		{
			name:  "offset inside span",
			input: "$^-2-$",
			expected: complexAddr{
				op: '-',
				l:  postfixAddr{op: '^', arg: -2, a: simpleAddr{typ: endAddrType}},
				r:  simpleAddr{typ: endAddrType},
			},
			ok: true,
		},
		{
			name:  "union binds loosest",
			input: "1+2#3",
			expected: complexAddr{
				op: '+',
				l:  simpleAddr{typ: lineAddrType, val: 1},
				r:  postfixAddr{op: '#', arg: 3, a: simpleAddr{typ: lineAddrType, val: 2}},
			},
			ok: true,
		},
		{
			name:  "group",
			input: "(1+/x/)^1",
			expected: postfixAddr{
				op:  '^',
				arg: 1,
				a: complexAddr{
					op: '+',
					l:  simpleAddr{typ: lineAddrType, val: 1},
					r:  simpleAddr{typ: regexAddrType, str: "x"},
				},
			},
			ok: true,
		},
		{
			name:  "postfix chain",
			input: "'m&#-1",
			expected: postfixAddr{
				op:  '#',
				arg: -1,
				a:   postfixAddr{op: '&', a: simpleAddr{typ: markAddrType, str: "m"}},
			},
			ok: true,
		},
		{
			name:     "special",
			input:    "%+.",
			expected: complexAddr{op: '+', l: simpleAddr{typ: allAddrType}, r: simpleAddr{typ: dotAddrType}},
			ok:       true,
		},
		{
			name:  "missing term",
			input: "1+",
			ok:    false,
			error: "at character 3: expected address after '+'",
		},
		{
			name:  "missing paren",
			input: "(1",
			ok:    false,
			error: "at character 3: missing closing ')'",
		},
		{
			name:  "missing number",
			input: "1^",
			ok:    false,
			error: "at character 3: expected number after '^'",
		},
		{
			name:  "span needs a line",
			input: "1-%",
			ok:    false,
			error: "at character 3: expected line or '$' after '-'",
		},
		{
			name:  "extra tokens",
			input: "1)",
			ok:    false,
			error: "at character 2: unexpected closeGroupTok in address",
		},
		{
			name:  "leading minus",
			input: "-1",
			ok:    false,
			error: "at character 1: unexpected minusTok in address",
		},
		{
			name:  "too large",
			input: "999999999999999999999999",
			ok:    false,
			error: "at character 25: bad line number 999999999999999999999999",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := parseTree(tc.input)
			if tc.ok {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, tree)
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got tree %#v", tc.error, tree)
			}
			assert.Equal(t, tc.error, err.Error())
		})
	}
}
