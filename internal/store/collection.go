package store

import "sync"

// collection holds the records of one kind keyed by id. Ids come from a
// monotonic counter and are never reused. order preserves insertion order
// for listing.
type collection[T any] struct {
	mu     sync.Mutex
	lastID int
	items  map[int]T
	order  []int
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[int]T)}
}

// add assigns the next id, lets stamp write it into the record, and stores
// the result. Assignment and insertion happen under one lock.
func (c *collection[T]) add(rec T, stamp func(*T, int)) (int, T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastID++
	id := c.lastID
	stamp(&rec, id)
	c.items[id] = rec
	c.order = append(c.order, id)
	return id, rec
}

// restore inserts rec under an explicit id and raises the counter past it.
// An existing record with the same id is replaced in place.
func (c *collection[T]) restore(id int, rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = rec
	if id > c.lastID {
		c.lastID = id
	}
}

// bump raises the counter to at least n without inserting anything.
func (c *collection[T]) bump(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n > c.lastID {
		c.lastID = n
	}
}

func (c *collection[T]) get(id int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.items[id]
	return rec, ok
}

// replace overwrites the record at id. It reports false if id is absent.
func (c *collection[T]) replace(id int, rec T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = rec
	return true
}

func (c *collection[T]) remove(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// list returns the records in insertion order in a new slice.
func (c *collection[T]) list() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *collection[T]) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

func (c *collection[T]) highWater() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastID
}
