// ABOUTME: Key naming scheme for the todo record store and ordering list
// ABOUTME: The layout is part of the store's public contract, not an incidental detail

package store

// Key layout, version 1. Changing either name or the record format is a
// breaking change to persisted data and requires a new layout version.
//
//	TODO:<id>   -> JSON-encoded todo record
//	TODOS_ORDER -> list of todo ids defining display order
const (
	todoKeyPrefix = "TODO:"
	orderKey      = "TODOS_ORDER"
)

// todoKey returns the record key for a todo id.
func todoKey(id string) string {
	return todoKeyPrefix + id
}
