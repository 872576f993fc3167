// Package debug keeps a bounded in-memory log of trace messages, grouped by
// category, that can be dumped when something goes wrong.
package debug

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xeniagda/red/internal/circ"
)

// DebugLog keeps the most recent entries of each category.
type DebugLog struct {
	entries map[string]*circ.Circ[*entry]
	max     int
	seq     uint64
	lock    sync.Mutex
}

type entry struct {
	when     time.Time
	seq      uint64
	category string
	message  string
}

func New(maxEntries int) *DebugLog {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &DebugLog{max: maxEntries, entries: make(map[string]*circ.Circ[*entry])}
}

func (l *DebugLog) Addf(category, message string, args ...interface{}) {
	l.Add(category, fmt.Sprintf(message, args...))
}

func (l *DebugLog) Add(category, message string) {
	l.lock.Lock()
	defer l.lock.Unlock()

	c, ok := l.entries[category]
	if !ok {
		n := circ.New[*entry](l.max)
		c = &n
		l.entries[category] = c
	}
	l.seq++
	c.Add(&entry{when: time.Now(), seq: l.seq, category: category, message: message})
}

// Categories returns the categories that have entries, in sorted order.
func (l *DebugLog) Categories() []string {
	l.lock.Lock()
	defer l.lock.Unlock()

	c := make([]string, 0, len(l.entries))
	for k := range l.entries {
		c = append(c, k)
	}
	sort.Strings(c)
	return c
}

// Merge together the logs from all the categories into one multi-line log.
// mark entries that are the start of a category with a special marker
// Format:
// 2022-05-21T12:43:12:123 <category><first> Message
func (l *DebugLog) String(categories ...string) string {
	l.lock.Lock()
	defer l.lock.Unlock()

	if len(categories) == 0 {
		for k := range l.entries {
			categories = append(categories, k)
		}
	}

	var all []*entry
	first := make(map[*entry]bool)
	for _, cat := range categories {
		c, ok := l.entries[cat]
		if !ok {
			continue
		}
		for i, e := range c.Items() {
			first[e] = i == 0
			all = append(all, e)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	var buf bytes.Buffer
	for _, e := range all {
		s := format(e, first[e])
		buf.WriteString(s)
		if !strings.HasSuffix(s, "\n") {
			buf.WriteRune('\n')
		}
	}
	return buf.String()
}

func format(e *entry, first bool) string {
	f := ""
	if first {
		f = "<first>"
	}
	return fmt.Sprintf("%s <%s>%s %s", e.when.Format("2006-01-02T15:04:05.000"), e.category, f, e.message)
}
