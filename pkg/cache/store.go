package cache

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by every operation on a closed store.
var ErrClosed = errors.New("cache: store closed")

// Store is a string key/value store with per-key expiry.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value and true when the key exists and has not expired.
	// A missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ClosableStore is a Store owning a resource (janitor goroutine, network pool).
type ClosableStore interface {
	Store
	Close() error
}
