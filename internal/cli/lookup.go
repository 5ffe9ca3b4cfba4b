package cli

import (
	"fmt"
	"strings"

	"github.com/illmade-knight/go-breedfetch/pkg/breeds"
	"github.com/illmade-knight/go-breedfetch/pkg/breedservice"
	"github.com/spf13/cobra"
)

func newLookupCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup BREED...",
		Short: "Print the sub-breeds of each breed",
		Long:  "Looks up each breed through one caching fetcher, so repeated breeds are served from the cache, then prints the number of calls that reached the catalog.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := stderrLogger(cfg.LogLevel)

			source, closeSource, err := breedservice.NewSource(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = closeSource() }()

			fetcher, err := breeds.NewCachingBreedFetcher(source, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, breed := range args {
				subBreeds, err := fetcher.SubBreeds(cmd.Context(), breed)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", breed, err)
					continue
				}
				if len(subBreeds) == 0 {
					fmt.Fprintf(out, "%s: (no sub-breeds)\n", breed)
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", breed, strings.Join(subBreeds, ", "))
			}
			fmt.Fprintf(out, "calls made: %d\n", fetcher.CallsMade())

			if failed > 0 {
				return fmt.Errorf("%d of %d lookups failed", failed, len(args))
			}
			return nil
		},
	}
}
