// Package breedservice exposes a caching breed fetcher over HTTP.
package breedservice

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/illmade-knight/go-breedfetch/pkg/breeds"
	"github.com/illmade-knight/go-breedfetch/pkg/microservice"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// SubBreedsResponse mirrors the dog.ceo response envelope.
type SubBreedsResponse struct {
	Status  string `json:"status"`
	Message any    `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// StatsResponse reports the caching fetcher's counters.
type StatsResponse struct {
	CallsMade    int `json:"callsMade"`
	CachedBreeds int `json:"cachedBreeds"`
}

// LookupService serves sub-breed lookups through a CachingBreedFetcher.
type LookupService struct {
	*microservice.BaseServer
	fetcher *breeds.CachingBreedFetcher
	logger  zerolog.Logger
}

var _ microservice.Service = (*LookupService)(nil)

// NewLookupService wires the lookup routes onto a new BaseServer.
func NewLookupService(cfg *Config, fetcher *breeds.CachingBreedFetcher, logger zerolog.Logger) *LookupService {
	svcLogger := logger.With().Str("component", "LookupService").Logger()
	s := &LookupService{
		BaseServer: microservice.NewBaseServer(svcLogger, cfg.HTTPPort),
		fetcher:    fetcher,
		logger:     svcLogger,
	}
	mux := s.Mux()
	mux.HandleFunc("GET /breeds/{breed}/sub-breeds", s.handleSubBreeds)
	mux.HandleFunc("GET /stats", s.handleStats)
	s.SetHandler(s.Handler())
	return s
}

// Start begins serving. The context is unused; Shutdown stops the server.
func (s *LookupService) Start(_ context.Context) error {
	return s.BaseServer.Start()
}

// Handler returns the routed mux wrapped in the request ID middleware.
func (s *LookupService) Handler() http.Handler {
	return s.withRequestID(s.Mux())
}

func (s *LookupService) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		reqLogger := s.logger.With().Str("request_id", requestID).Logger()
		reqLogger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("Handling request.")
		next.ServeHTTP(w, r.WithContext(reqLogger.WithContext(r.Context())))
	})
}

func (s *LookupService) handleSubBreeds(w http.ResponseWriter, r *http.Request) {
	breed := r.PathValue("breed")
	logger := zerolog.Ctx(r.Context())

	subBreeds, err := s.fetcher.SubBreeds(r.Context(), breed)
	if err != nil {
		logger.Warn().Err(err).Str("breed", breed).Msg("Sub-breed lookup failed.")
		writeJSON(w, http.StatusNotFound, SubBreedsResponse{
			Status:  "error",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
		return
	}

	writeJSON(w, http.StatusOK, SubBreedsResponse{Status: "success", Message: subBreeds})
}

func (s *LookupService) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatsResponse{
		CallsMade:    s.fetcher.CallsMade(),
		CachedBreeds: s.fetcher.CachedBreeds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
