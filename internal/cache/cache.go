// Package cache provides a bounded map that forgets the oldest entries
// first.
package cache

type Cache[K comparable, V any] struct {
	entries    map[K]V
	orderAdded Deque[K]
}

func New[K comparable, V any](max int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:    make(map[K]V),
		orderAdded: NewDeque[K](max),
	}
}

func (c *Cache[K, V]) Get(key K) (val V, ok bool) {
	val, ok = c.entries[key]
	return
}

// Set stores val under key. Replacing the value of a key does not change
// its age.
func (c *Cache[K, V]) Set(key K, val V) {
	if _, ok := c.entries[key]; !ok {
		c.removeOldestIfNeeded()
		c.orderAdded.PushBack(key)
	}
	c.entries[key] = val
}

func (c *Cache[K, V]) removeOldestIfNeeded() {
	if c.orderAdded.Count() < c.orderAdded.Max() {
		return
	}

	if k, ok := c.orderAdded.PopFront(); ok {
		delete(c.entries, k)
	}
}
