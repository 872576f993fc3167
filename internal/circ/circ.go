// Package circ provides a fixed size ring that keeps the most recently added
// values.
package circ

// Circ implements a circular array
type Circ[V any] struct {
	entries     []V
	first, last int
	count       int
}

func New[V any](max int) Circ[V] {
	if max < 1 {
		max = 1
	}

	return Circ[V]{
		entries: make([]V, max),
	}
}

func (c Circ[V]) Empty() bool {
	return c.count == 0
}

func (c Circ[V]) Len() int {
	return c.count
}

func (c Circ[V]) full() bool {
	return c.count == len(c.entries)
}

// Add appends v, evicting the oldest value if the ring is full.
func (c *Circ[V]) Add(v V) {
	full := c.full()
	c.entries[c.last] = v
	c.last = c.mod(c.last + 1)
	if full {
		c.first = c.mod(c.first + 1)
		return
	}
	c.count++
}

func (c Circ[V]) mod(index int) int {
	return index % len(c.entries)
}

// Each calls f on every value, oldest first.
func (c Circ[V]) Each(f func(v V)) {
	for i := 0; i < c.count; i++ {
		f(c.entries[c.mod(c.first+i)])
	}
}

// Items returns the values, oldest first.
func (c Circ[V]) Items() []V {
	items := make([]V, 0, c.count)
	c.Each(func(v V) { items = append(items, v) })
	return items
}
