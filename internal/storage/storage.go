// Package storage defines the persistence interface for policy batches.
package storage

import (
	"context"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
)

// Store defines the interface for the policy batch store.
// Implementations must be safe for concurrent use.
type Store interface {
	// EnsureSchema idempotently creates the database objects the store
	// needs. It runs before each persist so the service can start while
	// the database is down.
	EnsureSchema(ctx context.Context) error

	// InsertBatch appends every policy of the batch in one all-or-nothing
	// write and returns the number of rows written. Existing rows are
	// never updated or deleted.
	InsertBatch(ctx context.Context, batch *domain.RetrievalBatch) (int, error)

	// CountPolicies returns the number of stored policy rows.
	CountPolicies(ctx context.Context) (uint64, error)

	// Close closes the store.
	Close() error
}
