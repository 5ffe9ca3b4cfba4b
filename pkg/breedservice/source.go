package breedservice

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/illmade-knight/go-breedfetch/pkg/breeds"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// NewSource builds the underlying BreedFetcher selected by cfg.Source. The
// returned close function releases whatever the source owns.
func NewSource(ctx context.Context, cfg *Config, logger zerolog.Logger) (breeds.BreedFetcher, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Source {
	case SourceFirestore:
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		source, err := breeds.NewFirestoreBreedFetcher(&cfg.Firestore, client, logger)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return source, client.Close, nil

	case SourceRedis:
		source, err := breeds.NewRedisBreedFetcher(ctx, &cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return source, source.Close, nil

	default:
		source, err := breeds.NewDogAPIFetcher(&cfg.DogAPI, nil, logger)
		if err != nil {
			return nil, nil, err
		}
		return source, func() error { return nil }, nil
	}
}
