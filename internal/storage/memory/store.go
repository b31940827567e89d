// Package memory provides an in-memory store for testing.
package memory

import (
	"context"
	"sync"

	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
	"github.com/vivekshiftai/integration-of-firewall/internal/storage"
)

// Store is an in-memory implementation of storage.Store.
type Store struct {
	mu      sync.RWMutex
	batches []domain.RetrievalBatch
}

// Ensure Store implements storage.Store.
var _ storage.Store = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return nil
}

// InsertBatch appends a copy of the batch.
func (s *Store) InsertBatch(ctx context.Context, batch *domain.RetrievalBatch) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *batch
	stored.Policies = append([]domain.CanonicalPolicy(nil), batch.Policies...)
	s.batches = append(s.batches, stored)
	return len(stored.Policies), nil
}

// CountPolicies returns the number of stored policy rows.
func (s *Store) CountPolicies(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n uint64
	for _, b := range s.batches {
		n += uint64(len(b.Policies))
	}
	return n, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// Batches returns a copy of the stored batches, for test assertions.
func (s *Store) Batches() []domain.RetrievalBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.RetrievalBatch(nil), s.batches...)
}
