package breeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultRedisKeyPrefix is prepended to the lowercased breed name to form a Redis key.
const DefaultRedisKeyPrefix = "breeds:"

// RedisConfig holds the configuration for the Redis breed catalog.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// RedisBreedFetcher is a BreedFetcher reading JSON-encoded sub-breed arrays
// from Redis. It only reads; the catalog is populated by other means.
type RedisBreedFetcher struct {
	redisClient *redis.Client
	keyPrefix   string
	logger      zerolog.Logger
}

// NewRedisBreedFetcher creates and connects a RedisBreedFetcher.
// It pings the Redis server to ensure connectivity before returning.
func NewRedisBreedFetcher(ctx context.Context, cfg *RedisConfig, logger zerolog.Logger) (*RedisBreedFetcher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("redis_address", cfg.Addr).Msg("Successfully connected to Redis.")
	return NewRedisBreedFetcherFromClient(rdb, cfg.KeyPrefix, logger), nil
}

// NewRedisBreedFetcherFromClient wraps an existing client. The fetcher takes
// ownership of the client and closes it on Close.
func NewRedisBreedFetcherFromClient(client *redis.Client, keyPrefix string, logger zerolog.Logger) *RedisBreedFetcher {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisBreedFetcher{
		redisClient: client,
		keyPrefix:   keyPrefix,
		logger:      logger.With().Str("component", "RedisBreedFetcher").Logger(),
	}
}

// Key returns the Redis key holding the sub-breeds of breed.
func (f *RedisBreedFetcher) Key(breed string) string {
	return f.keyPrefix + strings.ToLower(breed)
}

// SubBreeds reads and decodes the sub-breed list stored for breed.
func (f *RedisBreedFetcher) SubBreeds(ctx context.Context, breed string) ([]string, error) {
	key := f.Key(breed)
	data, err := f.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			f.logger.Warn().Str("key", key).Msg("Breed not found in Redis.")
			return nil, NewNotFoundError(breed, fmt.Sprintf("No catalog entry for breed '%s'", breed), err)
		}
		f.logger.Error().Err(err).Str("key", key).Msg("Unexpected Redis error during fetch.")
		return nil, NewNotFoundError(breed, fmt.Sprintf("Failed to fetch sub-breeds for breed '%s': %v", breed, err), err)
	}

	return decodeSubBreeds(breed, []byte(data))
}

// decodeSubBreeds decodes a JSON array of strings stored for breed.
func decodeSubBreeds(breed string, data []byte) ([]string, error) {
	var subBreeds []string
	if err := json.Unmarshal(data, &subBreeds); err != nil {
		return nil, NewNotFoundError(breed, fmt.Sprintf("Error processing response for breed '%s': %v", breed, err), err)
	}
	if subBreeds == nil {
		return nil, NewNotFoundError(breed, fmt.Sprintf("Error processing response for breed '%s': value is not a list", breed), nil)
	}
	return subBreeds, nil
}

// Close closes the Redis client connection.
func (f *RedisBreedFetcher) Close() error {
	if f.redisClient != nil {
		f.logger.Info().Msg("Closing Redis client connection...")
		return f.redisClient.Close()
	}
	return nil
}
