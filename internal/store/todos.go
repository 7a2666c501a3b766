// ABOUTME: TodoStore maps todo CRUD operations onto a key-value backend
// ABOUTME: Owns id generation, the ordering list, and the record/order invariants

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// TodoStore implements Store over a KV backend. Record and ordering-list
// writes within one operation are sequential, not transactional: a crash
// between the two leaves a dangling entry, which ListAll skips (see the
// package documentation for the consistency policy).
type TodoStore struct {
	kv     KV
	logger *slog.Logger
}

var _ Store = (*TodoStore)(nil)

// NewTodoStore creates a todo store over the given KV handle. The caller
// injects the handle; the store assumes sole ownership of the todo keys.
func NewTodoStore(kv KV, logger *slog.Logger) *TodoStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoStore{
		kv:     kv,
		logger: logger.With("component", "store"),
	}
}

// unavailable wraps a KV failure so callers can detect it with
// errors.Is(err, ErrUnavailable) while the log line keeps the cause.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}

// ListAll returns every todo in ordering-list order. An id with no record,
// or a record that fails to decode, is skipped and logged rather than
// failing the whole listing.
func (s *TodoStore) ListAll(ctx context.Context) ([]*Todo, error) {
	ids, err := s.kv.Range(ctx, orderKey)
	if err != nil {
		return nil, unavailable("reading order list", err)
	}

	todos := make([]*Todo, 0, len(ids))
	for _, id := range ids {
		raw, err := s.kv.Get(ctx, todoKey(id))
		if errors.Is(err, ErrKeyMissing) {
			s.logger.Warn("order list references missing todo, skipping", "id", id)
			continue
		}
		if err != nil {
			return nil, unavailable("reading todo record", err)
		}

		t, err := decodeTodo(raw)
		if err != nil {
			s.logger.Warn("skipping undecodable todo record", "id", id, "error", err)
			continue
		}
		todos = append(todos, t)
	}

	return todos, nil
}

// Add validates the title, writes the record, and appends the new id to the
// ordering list tail. Validation failures leave the store untouched.
func (s *TodoStore) Add(ctx context.Context, title string) (*Todo, error) {
	t, err := NewTodo(title)
	if err != nil {
		return nil, err
	}

	raw, err := encodeTodo(t)
	if err != nil {
		return nil, err
	}

	if err := s.kv.Set(ctx, todoKey(t.ID), raw); err != nil {
		return nil, unavailable("writing todo record", err)
	}
	if err := s.kv.Append(ctx, orderKey, t.ID); err != nil {
		return nil, unavailable("appending to order list", err)
	}

	s.logger.Debug("todo added", "id", t.ID)
	return t, nil
}

// Get returns a single todo by id.
func (s *TodoStore) Get(ctx context.Context, id string) (*Todo, error) {
	raw, err := s.kv.Get(ctx, todoKey(id))
	if errors.Is(err, ErrKeyMissing) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("reading todo record", err)
	}
	return decodeTodo(raw)
}

// Toggle flips the completion flag with a read-modify-write on the single
// record key. Concurrent toggles of the same id race last-write-wins.
func (s *TodoStore) Toggle(ctx context.Context, id string) (*Todo, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Completed = !t.Completed

	raw, err := encodeTodo(t)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, todoKey(id), raw); err != nil {
		return nil, unavailable("rewriting todo record", err)
	}

	return t, nil
}

// Delete removes the record and its ordering-list entry. A second delete of
// the same id reports ErrNotFound, making the call idempotent in effect.
func (s *TodoStore) Delete(ctx context.Context, id string) error {
	removed, err := s.kv.Del(ctx, todoKey(id))
	if err != nil {
		return unavailable("deleting todo record", err)
	}
	if !removed {
		return ErrNotFound
	}

	if err := s.kv.Remove(ctx, orderKey, id); err != nil {
		return unavailable("removing from order list", err)
	}

	s.logger.Debug("todo deleted", "id", id)
	return nil
}

// ClearCompleted removes every completed todo from both the record store
// and the ordering list, returning the count removed.
func (s *TodoStore) ClearCompleted(ctx context.Context) (int, error) {
	ids, err := s.kv.Range(ctx, orderKey)
	if err != nil {
		return 0, unavailable("reading order list", err)
	}

	removed := 0
	for _, id := range ids {
		raw, err := s.kv.Get(ctx, todoKey(id))
		if errors.Is(err, ErrKeyMissing) {
			continue
		}
		if err != nil {
			return removed, unavailable("reading todo record", err)
		}

		t, err := decodeTodo(raw)
		if err != nil {
			s.logger.Warn("skipping undecodable todo record", "id", id, "error", err)
			continue
		}
		if !t.Completed {
			continue
		}

		if err := s.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			return removed, err
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("cleared completed todos", "count", removed)
	}
	return removed, nil
}

// HealthCheck pings the backend. Connectivity failure is reported as false,
// never as an error.
func (s *TodoStore) HealthCheck(ctx context.Context) bool {
	if err := s.kv.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", "error", err)
		return false
	}
	return true
}

// Reset removes every todo record and the ordering list itself.
func (s *TodoStore) Reset(ctx context.Context) error {
	ids, err := s.kv.Range(ctx, orderKey)
	if err != nil {
		return unavailable("reading order list", err)
	}

	for _, id := range ids {
		if _, err := s.kv.Del(ctx, todoKey(id)); err != nil {
			return unavailable("deleting todo record", err)
		}
	}
	if _, err := s.kv.Del(ctx, orderKey); err != nil {
		return unavailable("deleting order list", err)
	}

	s.logger.Info("store reset", "count", len(ids))
	return nil
}

// Close releases the KV connection.
func (s *TodoStore) Close() error {
	return s.kv.Close()
}
