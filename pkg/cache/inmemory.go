// Package cache provides generic in-memory memoization components.
package cache

import (
	"context"
	"sync"
)

// InMemoryCache is a generic, thread-safe, in-memory cache implementation.
// Entries are never evicted or overwritten once written.
// It satisfies the Cache interface.
type InMemoryCache[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// NewInMemoryCache creates a new, empty in-memory cache.
func NewInMemoryCache[K comparable, V any]() *InMemoryCache[K, V] {
	return &InMemoryCache[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves an item from the cache.
func (c *InMemoryCache[K, V]) Get(_ context.Context, key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.data[key]
	return value, ok
}

// Add stores value under key unless the key is already present.
func (c *InMemoryCache[K, V]) Add(_ context.Context, key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; exists {
		return false
	}
	c.data[key] = value
	return true
}

// Len returns the number of cached keys.
func (c *InMemoryCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
