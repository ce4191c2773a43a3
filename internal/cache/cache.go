package cache

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// Store is the persistent ISBN -> raw payload cache. The aggregation
// core never touches it; only the fetch collaborator reads and writes
// here, through the explicit Get/Put contract below.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Get returns the cached payload bytes for an ISBN. A missing key is
// (nil, false, nil), not an error.
func (s *Store) Get(isbn string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(isbn))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s: %w", isbn, err)
	}
	return payload, true, nil
}

// Put stores payload bytes for an ISBN. A nil payload is stored as JSON
// null so later runs see the ISBN as known-missing instead of
// re-fetching it.
func (s *Store) Put(isbn string, payload []byte) error {
	if payload == nil {
		payload = []byte("null")
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(isbn), payload)
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", isbn, err)
	}
	return nil
}

// Len counts cached entries.
func (s *Store) Len() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan cache: %w", err)
	}
	return count, nil
}

// Keys returns up to limit cached ISBNs in key order; limit <= 0 returns
// all of them.
func (s *Store) Keys(limit int) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(keys) >= limit {
				return nil
			}
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cache: %w", err)
	}
	return keys, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
