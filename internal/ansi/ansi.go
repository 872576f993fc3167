// Package ansi removes terminal escape sequences from text so that buffer
// content cannot change the state of the terminal it is printed on.
package ansi

import (
	"strings"

	ansip "github.com/leaanthony/go-ansi-parser"
)

func HasEscapeCodes(text string) bool {
	return ansip.HasEscapeCodes(text)
}

// Strip returns text without SGR escape sequences. Any other escape or
// control character left over is replaced by its caret notation.
func Strip(text string) string {
	if HasEscapeCodes(text) {
		if clean, err := ansip.Cleanse(text); err == nil {
			text = clean
		}
	}
	if strings.IndexFunc(text, isControl) < 0 {
		return text
	}

	var buf strings.Builder
	for _, r := range text {
		if isControl(r) {
			buf.WriteByte('^')
			buf.WriteRune(r ^ 0x40)
			continue
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

// isControl reports whether r is a C0 control character other than tab.
func isControl(r rune) bool {
	return (r < 0x20 && r != '\t') || r == 0x7f
}
