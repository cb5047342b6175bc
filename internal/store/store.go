package store

import (
	"context"
	"errors"
)

// Keys of the persisted documents. Each holds one JSON value.
const (
	KeyUser          = "user"
	KeyProfile       = "profile"
	KeyTasks         = "tasks"
	KeyNotifications = "notifications"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("key not found")

// Store is a synchronous, process-local key-value backend holding raw
// encoded documents.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}
