// Package cache provides the process-wide memo used for AI estimates.
package cache

import "sync"

// Memo is an unbounded, concurrency-safe map that is never invalidated.
// Concurrent writers to one key race harmlessly: the last write wins.
type Memo[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewMemo creates an empty Memo.
func NewMemo[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{m: make(map[K]V)}
}

// Get returns the cached value for key.
func (c *Memo[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// Set stores value under key.
func (c *Memo[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
}

// Len returns the number of cached entries.
func (c *Memo[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
