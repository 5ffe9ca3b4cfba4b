package cli

import (
	"context"
	"time"

	"github.com/illmade-knight/go-breedfetch/pkg/breeds"
	"github.com/illmade-knight/go-breedfetch/pkg/breedservice"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var httpPort string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sub-breed lookups over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if httpPort != "" {
				cfg.HTTPPort = httpPort
			}
			logger := stderrLogger(cfg.LogLevel).With().Str("service", cfg.ServiceName).Logger()

			ctx := cmd.Context()
			source, closeSource, err := breedservice.NewSource(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSource(); err != nil {
					logger.Error().Err(err).Msg("Failed to close breed source.")
				}
			}()

			fetcher, err := breeds.NewCachingBreedFetcher(source, logger)
			if err != nil {
				return err
			}

			svc := breedservice.NewLookupService(cfg, fetcher, logger)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			logger.Info().Str("port", svc.GetHTTPPort()).Str("source", cfg.Source).Msg("Breed lookup service started.")

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return svc.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&httpPort, "http-port", "", "Address to listen on, e.g. :8080")
	return cmd
}
