// Package store provides string-keyed whole-value persistence backends.
//
// The editor treats storage as an opaque record of strings: one key holds
// the serialized array of layout documents, another the last-selected
// layout id. Reads and writes are whole-value operations; there are no
// partial or field-level writes.
//
// Backends:
//   - memory: in-memory storage for tests and development
//   - disk: diskv-backed storage for normal CLI usage
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage, one document per key
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("not found")

// Store is the interface for key-value storage backends.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases backend resources.
	Close() error
}
