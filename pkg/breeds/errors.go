package breeds

import (
	"errors"
	"fmt"
)

// ErrBreedNotFound is the single failure kind of a BreedFetcher. It covers
// unknown breeds as well as lookups that could not be satisfied at all.
var ErrBreedNotFound = errors.New("breed not found")

// NotFoundError describes a failed lookup. Reason is a human-readable
// diagnostic for logs and display; Err holds the underlying cause, if any.
type NotFoundError struct {
	Breed  string
	Reason string
	Err    error
}

// NewNotFoundError builds a NotFoundError for breed. cause may be nil.
func NewNotFoundError(breed, reason string, cause error) *NotFoundError {
	return &NotFoundError{Breed: breed, Reason: reason, Err: cause}
}

func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrBreedNotFound, e.Breed)
	}
	return fmt.Sprintf("%s: %s", ErrBreedNotFound, e.Reason)
}

// Is makes every NotFoundError match ErrBreedNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrBreedNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsBreedNotFound reports whether err is a BreedNotFound error.
func IsBreedNotFound(err error) bool {
	return errors.Is(err, ErrBreedNotFound)
}
