package breedservice

import (
	"fmt"
	"os"

	"github.com/illmade-knight/go-breedfetch/pkg/breeds"
	"github.com/illmade-knight/go-breedfetch/pkg/microservice"
	"gopkg.in/yaml.v3"
)

// Catalog sources a service can be configured with.
const (
	SourceDogAPI    = "dogapi"
	SourceFirestore = "firestore"
	SourceRedis     = "redis"
)

// Config is the full configuration of the breed lookup service.
type Config struct {
	microservice.BaseConfig `yaml:",inline"`

	Source    string                 `yaml:"source"`
	DogAPI    breeds.DogAPIConfig    `yaml:"dog_api"`
	Firestore breeds.FirestoreConfig `yaml:"firestore"`
	Redis     breeds.RedisConfig     `yaml:"redis"`
}

// DefaultConfig returns a Config backed by the public dog.ceo API.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig: microservice.BaseConfig{
			LogLevel:    "info",
			HTTPPort:    ":8080",
			ServiceName: "breed-lookup",
		},
		Source: SourceDogAPI,
		DogAPI: breeds.DogAPIConfig{
			BaseURL: breeds.DefaultDogAPIBaseURL,
		},
		Firestore: breeds.FirestoreConfig{
			CollectionName: "breeds",
		},
		Redis: breeds.RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: breeds.DefaultRedisKeyPrefix,
		},
	}
}

// LoadConfig returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configured source is known and usable.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceDogAPI:
		return nil
	case SourceFirestore:
		if c.Firestore.ProjectID == "" {
			if c.ProjectID == "" {
				return fmt.Errorf("firestore source requires a project_id")
			}
			c.Firestore.ProjectID = c.ProjectID
		}
		if c.Firestore.CollectionName == "" {
			return fmt.Errorf("firestore source requires a collection_name")
		}
		return nil
	case SourceRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis source requires an addr")
		}
		return nil
	default:
		return fmt.Errorf("unknown breed source %q", c.Source)
	}
}
