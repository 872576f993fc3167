package input

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Reader reads lines from a plain stream such as a pipe.
type Reader struct {
	r *bufio.Reader
	w io.Writer
}

// NewReader reads lines from r. If w is not nil prompts are written to it.
func NewReader(r io.Reader, w io.Writer) *Reader {
	return &Reader{r: bufio.NewReader(r), w: w}
}

func (r *Reader) ReadLine(prompt string) (string, error) {
	if r.w != nil && prompt != "" {
		io.WriteString(r.w, prompt)
	}

	line, err := r.r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
