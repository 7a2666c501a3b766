// ABOUTME: Todo entity, sentinel errors, and the Store interface for tidelist persistence
// ABOUTME: Defines the public storage contract consumed by the web layer

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTitleLen is the maximum accepted title length in runes.
const MaxTitleLen = 256

// ErrNotFound is returned when a requested todo does not exist.
var ErrNotFound = errors.New("todo not found")

// ErrEmptyTitle is returned when a title is empty after trimming whitespace.
var ErrEmptyTitle = errors.New("title must not be empty")

// ErrTitleTooLong is returned when a title exceeds MaxTitleLen runes.
var ErrTitleTooLong = fmt.Errorf("title must be at most %d characters", MaxTitleLen)

// ErrUnavailable marks a store-connectivity failure. Callers can test for it
// with errors.Is to distinguish an unreachable backend from not-found and
// validation failures.
var ErrUnavailable = errors.New("store unavailable")

// Todo represents a single task. The JSON field names are the persisted
// record format and must not change without versioning the key scheme.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTodo builds a Todo from a user-supplied title. The title is trimmed;
// an empty or over-long result is rejected before any id is allocated.
func NewTodo(title string) (*Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return nil, ErrTitleTooLong
	}

	return &Todo{
		ID:        uuid.New().String(),
		Title:     title,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// encodeTodo serializes a todo to its persisted JSON record.
func encodeTodo(t *Todo) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding todo %s: %w", t.ID, err)
	}
	return string(data), nil
}

// decodeTodo parses a persisted JSON record. Records missing an id or title
// are rejected so a corrupt value is never surfaced as a valid todo.
func decodeTodo(raw string) (*Todo, error) {
	var t Todo
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("decoding todo record: %w", err)
	}
	if t.ID == "" || t.Title == "" {
		return nil, errors.New("decoding todo record: missing id or title")
	}
	return &t, nil
}

// Store defines the storage contract for todos. The implementation is the
// sole writer of both the record keys and the ordering list; no other
// component touches the underlying keys directly.
type Store interface {
	// ListAll returns every todo in insertion order.
	ListAll(ctx context.Context) ([]*Todo, error)

	// Add validates the title, persists a new todo, and appends its id to
	// the ordering list tail.
	Add(ctx context.Context, title string) (*Todo, error)

	// Get returns a single todo by id.
	Get(ctx context.Context, id string) (*Todo, error)

	// Toggle flips the completion flag and rewrites the record.
	Toggle(ctx context.Context, id string) (*Todo, error)

	// Delete removes the record and its ordering-list entry.
	Delete(ctx context.Context, id string) error

	// ClearCompleted removes every completed todo and returns the count.
	ClearCompleted(ctx context.Context) (int, error)

	// HealthCheck reports backend connectivity. It never returns an error;
	// an unreachable backend is reported as false.
	HealthCheck(ctx context.Context) bool

	// Reset removes every todo and the ordering list. Dev/test helper.
	Reset(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
