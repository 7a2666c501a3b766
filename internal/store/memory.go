// ABOUTME: In-memory KV implementation for testing
// ABOUTME: Allows the todo store to run without a Redis server

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by MemoryKV operations after Close.
var ErrClosed = errors.New("kv closed")

// MemoryKV is a mutex-guarded in-memory KV implementation. After Close,
// every operation fails with ErrClosed so tests can exercise the store's
// unavailable paths.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
	lists  map[string][]string
	closed bool
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

// Get returns the value at key, or ErrKeyMissing.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrClosed
	}
	val, ok := m.values[key]
	if !ok {
		return "", ErrKeyMissing
	}
	return val, nil
}

// Set writes the value at key.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

// Del removes the key and reports whether it existed.
func (m *MemoryKV) Del(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrClosed
	}
	if _, ok := m.values[key]; ok {
		delete(m.values, key)
		return true, nil
	}
	if _, ok := m.lists[key]; ok {
		delete(m.lists, key)
		return true, nil
	}
	return false, nil
}

// Append pushes a value onto the tail of the list at key.
func (m *MemoryKV) Append(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.lists[key] = append(m.lists[key], value)
	return nil
}

// Range returns a copy of the list at key, oldest first.
func (m *MemoryKV) Range(ctx context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	list := m.lists[key]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// Remove deletes all occurrences of value from the list at key.
func (m *MemoryKV) Remove(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	list := m.lists[key]
	kept := list[:0]
	for _, v := range list {
		if v != value {
			kept = append(kept, v)
		}
	}
	m.lists[key] = kept
	return nil
}

// Ping reports connectivity; fails only after Close.
func (m *MemoryKV) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close marks the KV closed. Subsequent operations fail with ErrClosed.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
