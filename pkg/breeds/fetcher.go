// Package breeds looks up the sub-breeds of a dog breed and memoizes the
// successful answers.
package breeds

import "context"

// BreedFetcher answers "what are the sub-breeds of this breed?".
//
// On success it returns an ordered, possibly empty, list of sub-breed names.
// Every failure is reported as a BreedNotFound error (see ErrBreedNotFound),
// whatever its underlying cause.
type BreedFetcher interface {
	SubBreeds(ctx context.Context, breed string) ([]string, error)
}

// BreedFetcherFunc adapts an ordinary function to the BreedFetcher interface.
type BreedFetcherFunc func(ctx context.Context, breed string) ([]string, error)

// SubBreeds calls f(ctx, breed).
func (f BreedFetcherFunc) SubBreeds(ctx context.Context, breed string) ([]string, error) {
	return f(ctx, breed)
}
