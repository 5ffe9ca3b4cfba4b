package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDogAPIServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/breed/hound/list":
			_, _ = w.Write([]byte(`{"message":["afghan","basset"],"status":"success"}`))
		case "/breed/pug/list":
			_, _ = w.Write([]byte(`{"message":[],"status":"success"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":"error","message":"Breed not found","code":404}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func runLookup(t *testing.T, baseURL string, breeds ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"lookup", "--log-level", "error", "--dog-api-url", baseURL}, breeds...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLookupCommand(t *testing.T) {
	t.Run("Repeated breeds are served from the cache", func(t *testing.T) {
		// Arrange
		var requests atomic.Int32
		server := newDogAPIServer(t, &requests)

		// Act
		out, err := runLookup(t, server.URL, "hound", "pug", "hound")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "hound: afghan, basset")
		assert.Contains(t, out, "pug: (no sub-breeds)")
		assert.Contains(t, out, "calls made: 2")
		assert.Equal(t, int32(2), requests.Load())
	})

	t.Run("Failed breeds are retried and reported", func(t *testing.T) {
		// Arrange
		var requests atomic.Int32
		server := newDogAPIServer(t, &requests)

		// Act
		out, err := runLookup(t, server.URL, "unicorn", "unicorn")

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 of 2 lookups failed")
		assert.Contains(t, out, "unicorn: breed not found: HTTP error code: 404 for breed: unicorn")
		assert.Contains(t, out, "calls made: 2")
	})

	t.Run("Requires at least one breed", func(t *testing.T) {
		_, err := runLookup(t, "http://127.0.0.1:1")
		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, "not-a-level")
	logger.Debug().Msg("hidden")
	logger.Info().Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}
