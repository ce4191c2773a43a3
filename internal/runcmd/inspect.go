package runcmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openshelf/booklens/internal/cache"
	"github.com/openshelf/booklens/internal/openlibrary"
)

// InspectOptions carries the inspect command's flag values.
type InspectOptions struct {
	CacheDir string
	ISBN     string
	Limit    int
	Verbose  bool
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var opts InspectOptions

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect cached payloads (useful for examining raw source data)",
		Long: `Inspect lists the cached payloads, or pretty-prints the raw payload of a
single ISBN. Useful for checking what Open Library actually returned before
blaming the normalizer.`,
		Example: `  # List the first 20 cached entries
  booklens inspect --cache ./cache --limit 20

  # Dump one raw payload
  booklens inspect --cache ./cache --isbn 9780140328721`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEnvDefault(cmd, "cache", "BOOKLENS_CACHE", &opts.CacheDir)
			return executeInspect(opts)
		},
	}

	cmd.Flags().StringVar(&opts.CacheDir, "cache", "cache", "Payload cache directory")
	cmd.Flags().StringVar(&opts.ISBN, "isbn", "", "Dump the raw payload for one ISBN")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "Number of entries to list (0 for all)")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")

	return cmd
}

func executeInspect(opts InspectOptions) error {
	setupLogging(opts.Verbose)

	store, err := cache.Open(opts.CacheDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close cache", "error", err)
		}
	}()

	if opts.ISBN != "" {
		return inspectOne(store, opts.ISBN)
	}
	return inspectList(store, opts.Limit)
}

func inspectOne(store *cache.Store, isbn string) error {
	data, ok, err := store.Get(isbn)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("No cache entry for %s\n", isbn)
		return nil
	}

	fmt.Printf("ISBN %s (%d bytes)\n", isbn, len(data))
	fmt.Println(strings.Repeat("-", 80))

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

func inspectList(store *cache.Store, limit int) error {
	total, err := store.Len()
	if err != nil {
		return err
	}
	keys, err := store.Keys(limit)
	if err != nil {
		return err
	}

	fmt.Printf("Cache entries: %d\n", total)
	fmt.Println(strings.Repeat("=", 80))

	for _, key := range keys {
		data, _, err := store.Get(key)
		if err != nil {
			return err
		}
		payload := openlibrary.DecodePayload(data)
		switch {
		case payload == nil:
			fmt.Printf("%-16s (no data)\n", key)
		case payload.Title != "":
			fmt.Printf("%-16s %s\n", key, payload.Title)
		default:
			fmt.Printf("%-16s (untitled, %d bytes)\n", key, len(data))
		}
	}

	if limit > 0 && total > len(keys) {
		fmt.Printf("... and %d more (raise --limit to see them)\n", total-len(keys))
	}
	return nil
}
