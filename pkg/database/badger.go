package database

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v3"
)

// OpenBadger opens the embedded store at path. An empty path opens an in-memory store.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	slog.Info("BadgerDB opened", slog.String("path", path), slog.Bool("inMemory", path == ""))
	return db, nil
}
