package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/interfaces"
)

// Memory implements KVStore with in-memory storage. Used for tests and when
// no cache path is configured; the overlay state is lost on shutdown.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates a new memory KV store
func NewMemory() interfaces.KVStore {
	return &Memory{
		data: make(map[string][]byte),
	}
}

// Get retrieves a value by key. A missing key yields (nil, nil).
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}

	// Return a copy to prevent external modification
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a value under a key
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return goerr.New("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Close is a no-op for the memory store
func (m *Memory) Close() error {
	return nil
}
