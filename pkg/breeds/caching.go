package breeds

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/illmade-knight/go-breedfetch/pkg/cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// CachingBreedFetcher wraps a BreedFetcher and memoizes its successful answers.
//
// The cache key is the breed string exactly as the caller passed it. Failed
// lookups are never cached, so a later call for the same breed reaches the
// wrapped fetcher again. CallsMade counts every call that reached the wrapped
// fetcher, successful or not.
//
// A CachingBreedFetcher is safe for concurrent use. Concurrent callers asking
// for the same uncached breed share a single delegated call, which counts once;
// if that call fails, every waiting caller receives the same error. The shared
// call runs with the context of the caller that started it.
type CachingBreedFetcher struct {
	fetcher BreedFetcher
	cache   cache.Cache[string, []string]
	group   singleflight.Group
	calls   atomic.Int64
	logger  zerolog.Logger
}

// NewCachingBreedFetcher creates a caching decorator around fetcher. The wrapped
// fetcher is only referenced, never closed, by the decorator.
func NewCachingBreedFetcher(fetcher BreedFetcher, logger zerolog.Logger) (*CachingBreedFetcher, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("wrapped breed fetcher cannot be nil")
	}
	return &CachingBreedFetcher{
		fetcher: fetcher,
		cache:   cache.NewInMemoryCache[string, []string](),
		logger:  logger.With().Str("component", "CachingBreedFetcher").Logger(),
	}, nil
}

// SubBreeds returns the cached sub-breeds for breed, or delegates to the
// wrapped fetcher on a miss. Errors from the wrapped fetcher are returned as-is.
func (c *CachingBreedFetcher) SubBreeds(ctx context.Context, breed string) ([]string, error) {
	if subBreeds, ok := c.cache.Get(ctx, breed); ok {
		c.logger.Debug().Str("breed", breed).Msg("Cache hit.")
		return slices.Clone(subBreeds), nil
	}

	result, err, shared := c.group.Do(breed, func() (interface{}, error) {
		// Another caller may have filled the entry between our miss and now.
		if subBreeds, ok := c.cache.Get(ctx, breed); ok {
			return subBreeds, nil
		}

		c.calls.Add(1)
		subBreeds, err := c.fetcher.SubBreeds(ctx, breed)
		if err != nil {
			return nil, err
		}

		stored := slices.Clone(subBreeds)
		if stored == nil {
			stored = []string{}
		}
		c.cache.Add(ctx, breed, stored)
		c.logger.Debug().Str("breed", breed).Int("sub_breeds", len(stored)).Msg("Cache miss. Stored result from wrapped fetcher.")
		return stored, nil
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("breed", breed).Bool("shared", shared).Msg("Wrapped fetcher failed; result not cached.")
		return nil, err
	}

	return slices.Clone(result.([]string)), nil
}

// CallsMade returns how many calls have reached the wrapped fetcher.
func (c *CachingBreedFetcher) CallsMade() int {
	return int(c.calls.Load())
}

// CachedBreeds returns the number of breeds currently memoized.
func (c *CachingBreedFetcher) CachedBreeds() int {
	return c.cache.Len()
}
