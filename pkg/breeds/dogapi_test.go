package breeds_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/illmade-knight/go-breedfetch/pkg/breeds"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDogAPITestServer(t *testing.T, handler http.HandlerFunc) *breeds.DogAPIFetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetcher, err := breeds.NewDogAPIFetcher(&breeds.DogAPIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil, zerolog.Nop())
	require.NoError(t, err)
	return fetcher
}

func TestDogAPIFetcher_SubBreeds(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		requestedPath := make(chan string, 1)
		fetcher := newDogAPITestServer(t, func(w http.ResponseWriter, r *http.Request) {
			requestedPath <- r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message":["afghan","basset","blood"],"status":"success"}`))
		})

		// Act
		subBreeds, err := fetcher.SubBreeds(ctx, "Hound")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"afghan", "basset", "blood"}, subBreeds)
		assert.Equal(t, "/breed/hound/list", <-requestedPath, "The breed should be lowercased in the request path")
	})

	t.Run("Breed with no sub-breeds", func(t *testing.T) {
		// Arrange
		fetcher := newDogAPITestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"message":[],"status":"success"}`))
		})

		// Act
		subBreeds, err := fetcher.SubBreeds(ctx, "beagle")

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, subBreeds)
		assert.Empty(t, subBreeds)
	})

	t.Run("Failure causes all map to BreedNotFound", func(t *testing.T) {
		testCases := []struct {
			name          string
			status        int
			body          string
			reasonContain string
		}{
			{
				name:          "Unknown breed 404",
				status:        http.StatusNotFound,
				body:          `{"status":"error","message":"Breed not found (main breed does not exist)","code":404}`,
				reasonContain: "HTTP error code: 404 for breed: cat",
			},
			{
				name:          "Server error",
				status:        http.StatusInternalServerError,
				body:          `oops`,
				reasonContain: "HTTP error code: 500",
			},
			{
				name:          "Error status in payload",
				status:        http.StatusOK,
				body:          `{"status":"error","message":"Breed not found"}`,
				reasonContain: "API error for breed 'cat': Breed not found",
			},
			{
				name:          "Error status without message",
				status:        http.StatusOK,
				body:          `{"status":"error"}`,
				reasonContain: "Unknown error",
			},
			{
				name:          "Malformed json",
				status:        http.StatusOK,
				body:          `{"status":`,
				reasonContain: "Error processing response for breed 'cat'",
			},
			{
				name:          "Message is not a list",
				status:        http.StatusOK,
				body:          `{"status":"success","message":{"hound":["afghan"]}}`,
				reasonContain: "Error processing response",
			},
			{
				name:          "Message is null",
				status:        http.StatusOK,
				body:          `{"status":"success","message":null}`,
				reasonContain: "message is not a list",
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				// Arrange
				fetcher := newDogAPITestServer(t, func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(tc.status)
					_, _ = w.Write([]byte(tc.body))
				})

				// Act
				subBreeds, err := fetcher.SubBreeds(ctx, "cat")

				// Assert
				require.Error(t, err)
				assert.Nil(t, subBreeds)
				assert.ErrorIs(t, err, breeds.ErrBreedNotFound)
				assert.Contains(t, err.Error(), tc.reasonContain)
			})
		}
	})

	t.Run("Transport failure maps to BreedNotFound", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.NotFoundHandler())
		baseURL := server.URL
		server.Close()
		fetcher, err := breeds.NewDogAPIFetcher(&breeds.DogAPIConfig{BaseURL: baseURL}, nil, zerolog.Nop())
		require.NoError(t, err)

		// Act
		_, err = fetcher.SubBreeds(ctx, "hound")

		// Assert
		require.Error(t, err)
		assert.True(t, breeds.IsBreedNotFound(err))
		assert.Contains(t, err.Error(), "Failed to fetch sub-breeds for breed 'hound'")

		var notFound *breeds.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "hound", notFound.Breed)
		assert.NotNil(t, notFound.Unwrap(), "The transport error should be kept as the cause")
	})

	t.Run("Works behind the caching fetcher", func(t *testing.T) {
		// Arrange
		var requests atomic.Int32
		fetcher := newDogAPITestServer(t, func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			if r.URL.Path == "/breed/terrier/list" {
				_, _ = w.Write([]byte(`{"message":["american","australian"],"status":"success"}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":"error","message":"Breed not found","code":404}`))
		})
		c, err := breeds.NewCachingBreedFetcher(fetcher, zerolog.Nop())
		require.NoError(t, err)

		// Act
		_, err1 := c.SubBreeds(ctx, "terrier")
		_, err2 := c.SubBreeds(ctx, "terrier")
		_, err3 := c.SubBreeds(ctx, "unicorn")
		_, err4 := c.SubBreeds(ctx, "unicorn")

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.ErrorIs(t, err3, breeds.ErrBreedNotFound)
		assert.ErrorIs(t, err4, breeds.ErrBreedNotFound)
		assert.Equal(t, 3, c.CallsMade())
		assert.Equal(t, int32(3), requests.Load())
	})
}

func TestNotFoundError(t *testing.T) {
	t.Run("Message uses reason", func(t *testing.T) {
		err := breeds.NewNotFoundError("cat", "HTTP error code: 404 for breed: cat", nil)
		assert.Equal(t, "breed not found: HTTP error code: 404 for breed: cat", err.Error())
	})

	t.Run("Message falls back to breed", func(t *testing.T) {
		err := breeds.NewNotFoundError("cat", "", nil)
		assert.Equal(t, "breed not found: cat", err.Error())
	})

	t.Run("Plain errors are not BreedNotFound", func(t *testing.T) {
		assert.False(t, breeds.IsBreedNotFound(assert.AnError))
	})
}
