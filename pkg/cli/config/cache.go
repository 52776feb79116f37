package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/interfaces"
	"github.com/safevoice-lab/safevoice/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Cache holds the local KV cache configuration for the status overlay
type Cache struct {
	Path string
}

// Flags returns CLI flags for Cache configuration
func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-path",
			Usage:       "Path of the SQLite file backing the board state (in-memory when unset)",
			Category:    "Cache",
			Sources:     cli.EnvVars("SAFEVOICE_CACHE_PATH"),
			Destination: &c.Path,
		},
	}
}

// Configure creates and returns the KV store
func (c *Cache) Configure(ctx context.Context) (interfaces.KVStore, error) {
	logger := ctxlog.From(ctx)

	if !c.IsConfigured() {
		logger.Warn("Using memory cache instead of SQLite. Board state will be removed when shutting down")
		return repository.NewMemory(), nil
	}

	kv, err := repository.NewSQLite(ctx, c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to init cache",
			goerr.V("path", c.Path),
		)
	}

	return kv, nil
}

// IsConfigured checks if a durable cache path was provided
func (c *Cache) IsConfigured() bool {
	return c.Path != ""
}

// LogValue returns structured log value
func (c Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", c.Path),
	)
}
