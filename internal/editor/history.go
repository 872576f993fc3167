package editor

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xeniagda/red/internal/circ"
)

// History remembers the most recent command lines and how they ended.
type History struct {
	cmds circ.Circ[*HistoryEntry]
}

type HistoryEntry struct {
	line     string
	scripted bool
	started  time.Time
	ended    time.Time
	err      error
}

func NewHistory(max int) *History {
	return &History{cmds: circ.New[*HistoryEntry](max)}
}

func (h *History) Started(line string, scripted bool) *HistoryEntry {
	e := &HistoryEntry{
		line:     line,
		scripted: scripted,
		started:  time.Now(),
	}
	h.cmds.Add(e)
	return e
}

func (h *History) Completed(e *HistoryEntry, err error) {
	e.ended = time.Now()
	e.err = err
}

// Last returns the most recent line. ok is false if nothing was run yet.
func (h *History) Last() (line string, ok bool) {
	items := h.cmds.Items()
	if len(items) == 0 {
		return "", false
	}
	return items[len(items)-1].line, true
}

// String lists the remembered lines, oldest first, with their start and end
// times.
func (h *History) String() string {
	var buf bytes.Buffer

	h.cmds.Each(func(e *HistoryEntry) {
		origin := ""
		if e.scripted {
			origin = " (script)"
		}
		result := ""
		if e.err != nil {
			result = fmt.Sprintf(" failed: %v", e.err)
		}
		fmt.Fprintf(&buf, "[%s – %s]%s %s%s\n", formatTime(e.started), formatTime(e.ended), origin, e.line, result)
	})

	return buf.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format("15:04:05")
}
