package breeds

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreConfig holds configuration for the Firestore breed catalog.
type FirestoreConfig struct {
	ProjectID      string `yaml:"project_id"`
	CollectionName string `yaml:"collection_name"`
}

// BreedDocument is the shape of one breed document in the catalog collection.
// The document ID is the lowercased breed name.
type BreedDocument struct {
	SubBreeds []string `firestore:"subBreeds"`
}

// FirestoreBreedFetcher is a BreedFetcher reading from a Firestore collection.
type FirestoreBreedFetcher struct {
	client         *firestore.Client
	collectionName string
	logger         zerolog.Logger
}

// NewFirestoreBreedFetcher creates a FirestoreBreedFetcher over an injected client.
func NewFirestoreBreedFetcher(
	cfg *FirestoreConfig,
	client *firestore.Client,
	logger zerolog.Logger,
) (*FirestoreBreedFetcher, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client cannot be nil")
	}
	if cfg == nil || cfg.CollectionName == "" {
		return nil, fmt.Errorf("firestore collection name cannot be empty")
	}

	logger.Info().Str("project_id", cfg.ProjectID).Str("collection", cfg.CollectionName).Msg("FirestoreBreedFetcher initialized.")

	return &FirestoreBreedFetcher{
		client:         client,
		collectionName: cfg.CollectionName,
		logger:         logger.With().Str("component", "FirestoreBreedFetcher").Logger(),
	}, nil
}

// SubBreeds reads the breed document and returns its sub-breed list.
func (s *FirestoreBreedFetcher) SubBreeds(ctx context.Context, breed string) ([]string, error) {
	docID := strings.ToLower(breed)
	if docID == "" {
		return nil, NewNotFoundError(breed, "breed name cannot be empty", nil)
	}

	docSnap, err := s.client.Collection(s.collectionName).Doc(docID).Get(ctx)
	if err != nil {
		return nil, s.classifyError(breed, err)
	}

	var doc BreedDocument
	if err := docSnap.DataTo(&doc); err != nil {
		s.logger.Error().Err(err).Str("breed", breed).Msg("Failed to map Firestore document data.")
		return nil, NewNotFoundError(breed, fmt.Sprintf("Error processing document for breed '%s': %v", breed, err), err)
	}
	if doc.SubBreeds == nil {
		doc.SubBreeds = []string{}
	}

	s.logger.Debug().Str("breed", breed).Msg("Successfully fetched sub-breeds from Firestore.")
	return doc.SubBreeds, nil
}

func (s *FirestoreBreedFetcher) classifyError(breed string, err error) error {
	if status.Code(err) == codes.NotFound {
		s.logger.Warn().Str("breed", breed).Msg("Breed document not found in Firestore.")
		return NewNotFoundError(breed, fmt.Sprintf("No catalog entry for breed '%s'", breed), err)
	}
	s.logger.Error().Err(err).Str("breed", breed).Msg("Failed to get breed document from Firestore.")
	return NewNotFoundError(breed, fmt.Sprintf("Failed to fetch sub-breeds for breed '%s': %v", breed, err), err)
}

// Close is a no-op as the Firestore client's lifecycle is managed externally.
func (s *FirestoreBreedFetcher) Close() error {
	s.logger.Info().Msg("FirestoreBreedFetcher does not close the injected Firestore client.")
	return nil
}
