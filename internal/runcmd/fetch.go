package runcmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/openshelf/booklens/internal/cache"
	"github.com/openshelf/booklens/internal/dataset"
	"github.com/openshelf/booklens/internal/openlibrary"
)

// FetchOptions carries the fetch command's flag values.
type FetchOptions struct {
	ISBNPath    string
	CacheDir    string
	Concurrency int
	RPS         int
	Refresh     bool
	Verbose     bool
}

// NewFetchCmd creates the fetch command
func NewFetchCmd() *cobra.Command {
	var opts FetchOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Prime the payload cache without running the analysis",
		Long: `Fetch resolves every ISBN on the list against the local cache, pulling
missing payloads from Open Library and storing them, so a later run can
operate entirely offline. Identifiers Open Library does not know are cached
as null and skipped on subsequent runs.`,
		Example: `  # Prime the cache for a list of ISBNs
  booklens fetch --isbns books-isbns.txt

  # Re-fetch everything, ignoring cached entries
  booklens fetch --isbns books-isbns.txt --refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEnvDefault(cmd, "isbns", "BOOKLENS_ISBNS", &opts.ISBNPath)
			applyEnvDefault(cmd, "cache", "BOOKLENS_CACHE", &opts.CacheDir)
			return executeFetch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ISBNPath, "isbns", "books-isbns.txt", "Path to the ISBN list, one identifier per line")
	cmd.Flags().StringVar(&opts.CacheDir, "cache", "cache", "Payload cache directory")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 4, "Parallel fetch workers")
	cmd.Flags().IntVar(&opts.RPS, "rps", 10, "Open Library requests per second")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "Re-fetch payloads even when cached")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")

	return cmd
}

func executeFetch(ctx context.Context, opts FetchOptions) error {
	setupLogging(opts.Verbose)

	isbns, err := dataset.LoadISBNs(opts.ISBNPath)
	if err != nil {
		return err
	}
	slog.Info("Loaded ISBN list", "path", opts.ISBNPath, "count", len(isbns))

	store, err := cache.Open(opts.CacheDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close cache", "error", err)
		}
	}()

	client := openlibrary.NewClient(
		envOr("BOOKLENS_BASE_URL", ""),
		envOr("BOOKLENS_USER_AGENT", ""),
		0,
		opts.RPS,
	)
	fetcher := openlibrary.NewFetcher(client, store, openlibrary.FetchConfig{
		Workers: opts.Concurrency,
		Refresh: opts.Refresh,
	})

	results, err := fetcher.FetchAll(ctx, isbns)
	if err != nil {
		return err
	}

	hits, fetched, missing := 0, 0, 0
	for _, res := range results {
		switch {
		case res.Hit:
			hits++
		case openlibrary.DecodePayload(res.Data) == nil:
			missing++
		default:
			fetched++
		}
	}

	fmt.Printf("\nCache priming complete!\n")
	fmt.Printf("  Cache hits:     %d\n", hits)
	fmt.Printf("  Fetched:        %d\n", fetched)
	fmt.Printf("  Missing/failed: %d\n", missing)
	fmt.Printf("  Cache location: %s\n", opts.CacheDir)

	return nil
}
