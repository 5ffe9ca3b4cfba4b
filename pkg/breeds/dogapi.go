package breeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultDogAPIBaseURL is the public dog.ceo API.
	DefaultDogAPIBaseURL = "https://dog.ceo/api"
	defaultDogAPITimeout = 30 * time.Second
	dogAPIStatusSuccess  = "success"
)

// DogAPIConfig holds the configuration for the dog.ceo client.
type DogAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DogAPIFetcher is a BreedFetcher backed by the dog.ceo breed catalog API.
// Every failure, including transport errors, non-2xx statuses and malformed
// payloads, is reported as a NotFoundError.
type DogAPIFetcher struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// dogAPIResponse is the envelope of every dog.ceo response. Message holds the
// sub-breed list on success and an error description otherwise.
type dogAPIResponse struct {
	Status  string          `json:"status"`
	Message json.RawMessage `json:"message"`
	Code    int             `json:"code,omitempty"`
}

// NewDogAPIFetcher creates a DogAPIFetcher. A nil client gets a default
// http.Client using cfg.Timeout.
func NewDogAPIFetcher(cfg *DogAPIConfig, client *http.Client, logger zerolog.Logger) (*DogAPIFetcher, error) {
	baseURL := DefaultDogAPIBaseURL
	timeout := defaultDogAPITimeout
	if cfg != nil {
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid dog api base url %q: %w", baseURL, err)
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	logger.Info().Str("base_url", baseURL).Msg("DogAPIFetcher initialized.")

	return &DogAPIFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger.With().Str("component", "DogAPIFetcher").Logger(),
	}, nil
}

// SubBreeds fetches the sub-breeds of breed. The breed is lowercased for the
// request path; error messages quote it as given.
func (f *DogAPIFetcher) SubBreeds(ctx context.Context, breed string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/breed/%s/list", f.baseURL, url.PathEscape(strings.ToLower(breed)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewNotFoundError(breed, fmt.Sprintf("Failed to fetch sub-breeds for breed '%s': %v", breed, err), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error().Err(err).Str("breed", breed).Msg("Request to dog api failed.")
		return nil, NewNotFoundError(breed, fmt.Sprintf("Failed to fetch sub-breeds for breed '%s': %v", breed, err), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn().Int("status_code", resp.StatusCode).Str("breed", breed).Msg("Dog api returned an unsuccessful status.")
		return nil, NewNotFoundError(breed, fmt.Sprintf("HTTP error code: %d for breed: %s", resp.StatusCode, breed), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNotFoundError(breed, fmt.Sprintf("Failed to fetch sub-breeds for breed '%s': %v", breed, err), err)
	}

	subBreeds, err := parseDogAPIResponse(breed, body)
	if err != nil {
		f.logger.Warn().Err(err).Str("breed", breed).Msg("Dog api lookup failed.")
		return nil, err
	}

	f.logger.Debug().Str("breed", breed).Int("sub_breeds", len(subBreeds)).Msg("Fetched sub-breeds from dog api.")
	return subBreeds, nil
}

// parseDogAPIResponse extracts the sub-breed list from a response body.
func parseDogAPIResponse(breed string, body []byte) ([]string, error) {
	var envelope dogAPIResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, NewNotFoundError(breed, fmt.Sprintf("Error processing response for breed '%s': %v", breed, err), err)
	}

	if envelope.Status != dogAPIStatusSuccess {
		message := "Unknown error"
		var text string
		if err := json.Unmarshal(envelope.Message, &text); err == nil && text != "" {
			message = text
		}
		return nil, NewNotFoundError(breed, fmt.Sprintf("API error for breed '%s': %s", breed, message), nil)
	}

	var subBreeds []string
	if err := json.Unmarshal(envelope.Message, &subBreeds); err != nil {
		return nil, NewNotFoundError(breed, fmt.Sprintf("Error processing response for breed '%s': %v", breed, err), err)
	}
	if subBreeds == nil {
		// A "null" message is not a list.
		return nil, NewNotFoundError(breed, fmt.Sprintf("Error processing response for breed '%s': message is not a list", breed), nil)
	}
	return subBreeds, nil
}
