package cache

import "fmt"

// Deque is a bounded double ended queue stored in a ring.
type Deque[T any] struct {
	buf   []T
	head  int
	count int
}

func NewDeque[T any](max int) Deque[T] {
	if max < 1 {
		max = 1
	}
	return Deque[T]{
		buf: make([]T, max),
	}
}

func (q *Deque[T]) PushBack(elem T) error {
	if q.count == len(q.buf) {
		return fmt.Errorf("queue is full")
	}

	q.buf[q.index(q.count)] = elem
	q.count++
	return nil
}

func (q *Deque[T]) index(i int) int {
	return (q.head + i) % len(q.buf)
}

func (q *Deque[T]) PopFront() (elem T, ok bool) {
	if q.count == 0 {
		return
	}

	var zero T
	elem = q.buf[q.head]
	q.buf[q.head] = zero
	q.head = q.index(1)
	q.count--
	return elem, true
}

func (q *Deque[T]) Count() int {
	return q.count
}

func (q *Deque[T]) Max() int {
	return len(q.buf)
}
