package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Backend is durable key-value storage for serialized game saves.
// Implementations: MockBackend (memory), and the file, Redis and SQLite
// backends in internal/storage.
type Backend interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Get returns the blob stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the blob stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
