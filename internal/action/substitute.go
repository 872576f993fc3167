package action

import (
	"github.com/dlclark/regexp2"
)

// Substitute replaces every match of Pattern in the selected lines.
// Replacement may refer to groups as $1 or ${name}. The number of
// replacements and of changed lines is reported.
type Substitute struct {
	Pattern     string
	Replacement string
}

func (s Substitute) Apply(ctx *Context) (bool, error) {
	re, err := regexp2.Compile(s.Pattern, regexp2.None)
	if err != nil {
		return false, wrap(Regex, err, "%q", s.Pattern)
	}

	var failed error
	replaced, lines := 0, 0
	dirty, err := edit(ctx, func(line string) string {
		if failed != nil {
			return line
		}
		n, err := countMatches(re, line)
		if err != nil {
			failed = wrap(Regex, err, "%q", s.Pattern)
			return line
		}
		if n == 0 {
			return line
		}
		res, err := re.Replace(line, s.Replacement, -1, -1)
		if err != nil {
			failed = wrap(Regex, err, "%q", s.Pattern)
			return line
		}
		replaced += n
		lines++
		return res
	})
	if err == nil {
		err = failed
	}
	if err == nil {
		ctx.Out.Info("%d replacements on %d lines", replaced, lines)
	}
	return dirty, err
}

func countMatches(re *regexp2.Regexp, line string) (n int, err error) {
	m, err := re.FindStringMatch(line)
	for m != nil && err == nil {
		n++
		m, err = re.FindNextMatch(m)
	}
	return n, err
}
