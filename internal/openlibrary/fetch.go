package openlibrary

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/openshelf/booklens/internal/cache"
)

// Result is one cache-aside retrieval outcome.
type Result struct {
	ISBN string
	Data []byte // raw payload bytes; JSON null when no data is available
	Hit  bool   // served from the cache without touching the network
}

// FetchConfig controls how a Fetcher resolves payloads.
type FetchConfig struct {
	Workers int  // parallel fetches; values below 1 mean 1
	Refresh bool // re-fetch even when the cache has an entry
	Offline bool // never touch the network; cache misses become null payloads
}

// Fetcher resolves raw payloads cache-aside: the store first, the
// network on a miss, and every network outcome written back so later
// runs can stay offline.
type Fetcher struct {
	client *Client
	store  *cache.Store
	cfg    FetchConfig
}

// NewFetcher creates a fetcher over a client and an open cache store.
func NewFetcher(client *Client, store *cache.Store, cfg FetchConfig) *Fetcher {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Fetcher{client: client, store: store, cfg: cfg}
}

// FetchAll resolves payloads for every ISBN, preserving input order.
// Duplicate ISBNs are fetched once and share one result. A network
// failure for a single ISBN degrades to a cached null payload with a
// warning; only context cancellation and cache I/O abort the whole run.
func (f *Fetcher) FetchAll(ctx context.Context, isbns []string) ([]Result, error) {
	unique := make([]string, 0, len(isbns))
	index := make(map[string]int, len(isbns))
	for _, isbn := range isbns {
		if _, ok := index[isbn]; !ok {
			index[isbn] = len(unique)
			unique = append(unique, isbn)
		}
	}

	fetched := make([]Result, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Workers)
	for i, isbn := range unique {
		g.Go(func() error {
			res, err := f.fetchOne(gctx, isbn)
			if err != nil {
				return err
			}
			fetched[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve payloads: %w", err)
	}

	results := make([]Result, len(isbns))
	for i, isbn := range isbns {
		results[i] = fetched[index[isbn]]
	}
	return results, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, isbn string) (Result, error) {
	if !f.cfg.Refresh {
		data, ok, err := f.store.Get(isbn)
		if err != nil {
			return Result{}, err
		}
		if ok {
			slog.Debug("Cache hit", "isbn", isbn)
			return Result{ISBN: isbn, Data: data, Hit: true}, nil
		}
	}

	if f.cfg.Offline {
		slog.Debug("Cache miss in offline mode", "isbn", isbn)
		return Result{ISBN: isbn, Data: []byte("null")}, nil
	}

	data, err := f.client.FetchByISBN(ctx, isbn)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		// Cache the failure as null, matching the upstream pipeline:
		// a bad identifier is not worth re-fetching every run.
		slog.Warn("Fetch failed, caching null", "isbn", isbn, "error", err)
		data = nil
	}

	if err := f.store.Put(isbn, data); err != nil {
		return Result{}, err
	}
	if data == nil {
		data = []byte("null")
	}
	slog.Debug("Fetched payload", "isbn", isbn, "bytes", len(data))
	return Result{ISBN: isbn, Data: data}, nil
}
