// ABOUTME: KV interface abstracting the key-value backend used by the todo store
// ABOUTME: Implemented by RedisKV for production and MemoryKV for tests

package store

import (
	"context"
	"errors"
)

// ErrKeyMissing is returned by KV implementations when a key does not exist.
var ErrKeyMissing = errors.New("key missing")

// KV is the minimal key-value surface the todo store needs: string keys
// holding either a single value or an ordered list. Connection parameters
// belong to the implementation; the store only sees the handle.
type KV interface {
	// Get returns the value at key, or ErrKeyMissing.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value at key, creating or overwriting it.
	Set(ctx context.Context, key, value string) error

	// Del removes the key and reports whether it existed.
	Del(ctx context.Context, key string) (bool, error)

	// Append pushes a value onto the tail of the list at key.
	Append(ctx context.Context, key, value string) error

	// Range returns the full list at key, oldest first. A missing key is
	// an empty list, not an error.
	Range(ctx context.Context, key string) ([]string, error)

	// Remove deletes all occurrences of value from the list at key.
	Remove(ctx context.Context, key, value string) error

	// Ping verifies connectivity to the backend.
	Ping(ctx context.Context) error

	// Close releases the connection.
	Close() error
}
