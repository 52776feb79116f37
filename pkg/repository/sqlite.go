package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/interfaces"

	_ "modernc.org/sqlite"
)

// SQLite implements KVStore backed by a local SQLite file. This is the
// durable analog of the browser's local storage: the status overlay survives
// restarts without any server-side incident persistence.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the cache database at the given path
func NewSQLite(ctx context.Context, path string) (interfaces.KVStore, error) {
	if path == "" {
		return nil, goerr.New("cache path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open cache database",
			goerr.V("path", path))
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cache (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to init cache schema",
			goerr.V("path", path))
	}

	return &SQLite{db: db}, nil
}

// Get retrieves a value by key. A missing key yields (nil, nil).
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("key is empty")
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM cache WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read cache entry",
			goerr.V("key", key))
	}
	return value, nil
}

// Set stores a value under a key, replacing any previous value
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return goerr.New("key is empty")
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO cache(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		return goerr.Wrap(err, "failed to write cache entry",
			goerr.V("key", key))
	}
	return nil
}

// Close closes the database
func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close cache database")
	}
	return nil
}
