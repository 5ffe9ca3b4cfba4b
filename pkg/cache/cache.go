package cache

import "context"

// Cache is a generic interface for a write-once memoization layer.
type Cache[K any, V any] interface {
	// Get retrieves an item from the cache. The bool reports whether the key was present.
	Get(ctx context.Context, key K) (V, bool)
	// Add stores an item if the key is not already present. It returns false,
	// leaving the existing value in place, when the key was already cached.
	Add(ctx context.Context, key K, value V) bool
	// Len returns the number of cached keys.
	Len() int
}
