// Package cli implements the breedfetch command line.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/illmade-knight/go-breedfetch/pkg/breedservice"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
	source     string
	dogAPIURL  string
}

// NewRootCommand builds the breedfetch command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "breedfetch",
		Short:        "Look up dog sub-breeds with a caching fetcher",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.source, "source", "", "Breed catalog source (dogapi, firestore, redis)")
	cmd.PersistentFlags().StringVar(&opts.dogAPIURL, "dog-api-url", "", "Base URL of the dog API")

	cmd.AddCommand(newLookupCommand(opts))
	cmd.AddCommand(newServeCommand(opts))
	return cmd
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*breedservice.Config, error) {
	cfg, err := breedservice.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.source != "" {
		cfg.Source = o.source
	}
	if o.dogAPIURL != "" {
		cfg.DogAPI.BaseURL = o.dogAPIURL
	}
	return cfg, cfg.Validate()
}

// newLogger builds a console logger on w at the given level; unknown levels fall back to info.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

func stderrLogger(level string) zerolog.Logger {
	return newLogger(os.Stderr, level)
}
