package interfaces

import "context"

// KVStore is the local key-value cache backing the status overlay. It is the
// browser-local-storage analog: small JSON blobs keyed by name. A missing
// key returns (nil, nil), not an error. Implementations must be safe for
// concurrent use.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	// Close closes the underlying store
	Close() error
}
