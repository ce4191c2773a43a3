package runcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/openshelf/booklens/internal/answers"
	"github.com/openshelf/booklens/internal/book"
	"github.com/openshelf/booklens/internal/cache"
	"github.com/openshelf/booklens/internal/dataset"
	"github.com/openshelf/booklens/internal/export"
	"github.com/openshelf/booklens/internal/openlibrary"
	"github.com/openshelf/booklens/internal/report"
)

// RunOptions carries the run command's flag values.
type RunOptions struct {
	ISBNPath     string
	CacheDir     string
	OutputPath   string
	Format       string
	AuditCSV     string
	AuditParquet string
	Concurrency  int
	RPS          int
	Offline      bool
	Verbose      bool
}

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var opts RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: fetch, normalize, aggregate, report",
		Long: `Run loads an ISBN list, resolves each identifier to a raw Open Library
payload through the local cache, normalizes the payloads into book records,
deduplicates them by ISBN, and answers the twelve standing questions about
the resulting set.

Artifacts: the answers file (text, YAML, or JSON), an optional audit export
of every flattened record before deduplication (CSV and/or parquet), and a
console summary.`,
		Example: `  # Answer the questions for a list of ISBNs
  booklens run --isbns books-isbns.txt

  # Stay offline and emit YAML plus a parquet audit trail
  booklens run --isbns books-isbns.txt --offline --format yaml --output answers.yaml --audit-parquet books.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEnvDefault(cmd, "isbns", "BOOKLENS_ISBNS", &opts.ISBNPath)
			applyEnvDefault(cmd, "cache", "BOOKLENS_CACHE", &opts.CacheDir)
			return executeRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ISBNPath, "isbns", "books-isbns.txt", "Path to the ISBN list, one identifier per line")
	cmd.Flags().StringVar(&opts.CacheDir, "cache", "cache", "Payload cache directory")
	cmd.Flags().StringVar(&opts.OutputPath, "output", "answers.txt", "Answers file path")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Answers format: text, yaml, or json")
	cmd.Flags().StringVar(&opts.AuditCSV, "audit-csv", "books.csv", "Audit export CSV path (empty to disable)")
	cmd.Flags().StringVar(&opts.AuditParquet, "audit-parquet", "", "Audit export parquet path (empty to disable)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 4, "Parallel fetch workers")
	cmd.Flags().IntVar(&opts.RPS, "rps", 10, "Open Library requests per second")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "Never touch the network; cache misses become absent payloads")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")

	return cmd
}

func executeRun(ctx context.Context, opts RunOptions) error {
	setupLogging(opts.Verbose)

	switch opts.Format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unknown format %q (want text, yaml, or json)", opts.Format)
	}

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
		Offline: opts.Offline,
	})

	results, err := fetcher.FetchAll(ctx, isbns)
	if err != nil {
		return err
	}

	records := make([]book.Record, len(results))
	for i, res := range results {
		records[i] = book.Normalize(res.ISBN, openlibrary.DecodePayload(res.Data))
	}

	table := book.BuildTable(records)
	slog.Info("Built record table", "records", len(table.Audit), "rows", len(table.Rows))

	set := answers.Compute(table)
	header := report.NewHeader(opts.ISBNPath, len(table.Audit), len(table.Rows))

	switch opts.Format {
	case "yaml":
		err = report.WriteYAML(opts.OutputPath, header, set)
	case "json":
		err = report.WriteJSON(opts.OutputPath, header, set)
	default:
		err = report.WriteText(opts.OutputPath, set)
	}
	if err != nil {
		return err
	}
	slog.Info("Wrote answers", "path", opts.OutputPath, "format", opts.Format)

	if opts.AuditCSV != "" || opts.AuditParquet != "" {
		rows := export.FlattenRecords(table.Audit)
		if opts.AuditCSV != "" {
			if err := export.WriteCSV(opts.AuditCSV, rows); err != nil {
				return err
			}
			slog.Info("Wrote audit export", "path", opts.AuditCSV, "rows", len(rows))
		}
		if opts.AuditParquet != "" {
			if err := export.WriteParquet(opts.AuditParquet, rows); err != nil {
				return err
			}
			slog.Info("Wrote audit export", "path", opts.AuditParquet, "rows", len(rows))
		}
	}

	report.PrintSummary(os.Stdout, header, set)
	return nil
}
