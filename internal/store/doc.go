// Package store persists todos in a key-value backend and is the sole
// mediator between the entity model and the underlying keys.
//
// # Key Layout
//
// Version 1 of the key scheme (see keys.go) is part of this package's
// public contract:
//
//	TODO:<id>   -> JSON record with fields id, title, completed, created_at
//	TODOS_ORDER -> list of ids defining display order
//
// Ids are appended to the tail of TODOS_ORDER on create and removed on
// delete, so the list order is insertion order, oldest first.
//
// # Consistency Policy
//
// Record and ordering-list writes within a single operation are issued
// sequentially without a multi-key transaction. A crash between the two
// writes can leave a dangling ordering-list entry. The policy is
// skip-and-continue: ListAll and ClearCompleted skip an id whose record is
// missing or undecodable, log the skip at Warn, and keep going. Dangling
// entries are never surfaced to callers and are cleaned up when the id is
// deleted.
//
// # Backends
//
// The KV interface abstracts the backend. RedisKV is the production
// implementation; MemoryKV is an in-memory substitute for tests:
//
//	kv := store.NewMemoryKV()
//	todos := store.NewTodoStore(kv, logger)
//
// # Error Handling
//
// Sentinel errors:
//
//   - ErrNotFound: operation referenced a nonexistent id
//   - ErrEmptyTitle, ErrTitleTooLong: title validation failures
//   - ErrUnavailable: backend unreachable (wrapped, test with errors.Is)
//
// Connectivity failures are never masked as successful no-ops; the single
// exception is HealthCheck, which reports them as false by contract.
//
// All methods accept context.Context; timeouts and cancellation are
// delegated to the backend client.
package store
