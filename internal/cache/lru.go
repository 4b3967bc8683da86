// Package cache provides a generic fixed-capacity LRU cache.
package cache

import "fmt"

// node is a doubly-linked list entry. Sentinel head/tail nodes keep the
// link surgery branch-free.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// LRU is a bounded key/value cache with O(1) operations.
// Get and Set both promote the entry to most-recently-used; inserting a new
// key at capacity evicts the least-recently-used entry first.
//
// LRU is not safe for concurrent use; callers that share one across
// goroutines must provide their own locking.
type LRU[K comparable, V any] struct {
	capacity int
	entries  map[K]*node[K, V]
	head     *node[K, V] // most recently used side
	tail     *node[K, V] // least recently used side
}

// New creates an LRU cache holding at most capacity entries.
// Capacity must be positive.
func New[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("lru: capacity must be positive, got %d", capacity)
	}
	c := &LRU[K, V]{
		capacity: capacity,
		entries:  make(map[K]*node[K, V], capacity),
		head:     &node[K, V]{},
		tail:     &node[K, V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c, nil
}

// Get returns the value for key and marks it most-recently-used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	return n.value, true
}

// Set inserts or replaces the value for key and marks it most-recently-used.
func (c *LRU[K, V]) Set(key K, value V) {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.moveToFront(n)
		return
	}
	if len(c.entries) >= c.capacity {
		c.evict()
	}
	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.pushFront(n)
}

// Has reports whether key is cached, without promoting it.
func (c *LRU[K, V]) Has(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Delete removes key from the cache. Returns true if it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.unlink(n)
	delete(c.entries, key)
	return true
}

// Clear removes all entries.
func (c *LRU[K, V]) Clear() {
	clear(c.entries)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

func (c *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev = c.head
	n.next = c.head.next
	c.head.next.prev = n
	c.head.next = n
}

func (c *LRU[K, V]) unlink(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (c *LRU[K, V]) moveToFront(n *node[K, V]) {
	c.unlink(n)
	c.pushFront(n)
}

func (c *LRU[K, V]) evict() {
	n := c.tail.prev
	if n == c.head {
		return
	}
	c.unlink(n)
	delete(c.entries, n.key)
}
