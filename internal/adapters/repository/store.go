// Package repository defines the responsibility record store interface
// and its in-memory implementation.
package repository

import (
	"context"

	"github.com/samprox/tally/internal/domain/model"
)

// Store provides read/write access to responsibility records. The engine
// itself never persists anything; the store backs the HTTP surface so
// callers can round-trip records between edits.
type Store interface {
	// Put inserts or replaces a record keyed by its ID.
	Put(ctx context.Context, rec model.Record) error

	// Get returns the record with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (model.Record, error)

	// Delete removes a record. Returns ErrNotFound if the ID is unknown.
	Delete(ctx context.Context, id string) error

	// List returns all records ordered by creation time, oldest first.
	List(ctx context.Context) ([]model.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) int
}
