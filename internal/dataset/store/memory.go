package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
	"github.com/shandysiswandi/gocsv/internal/dataset/usecase"
)

// InMemoryStore is the process-wide append-only row log.
//
// One Append is atomic with respect to readers: a reader sees either none or
// all rows of a batch.
type InMemoryStore struct {
	mu      sync.RWMutex
	rows    []entity.Row
	batches []entity.Batch
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(ctx context.Context, batch entity.Batch, rows []entity.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, rows...)
	s.batches = append(s.batches, batch)

	return nil
}

// Rows returns a snapshot of every stored row in append order.
func (s *InMemoryStore) Rows(ctx context.Context) ([]entity.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.rows), nil
}

// Find returns the rows matching filter in append order; never nil.
func (s *InMemoryStore) Find(ctx context.Context, filter usecase.RowFilter) ([]entity.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.Row, 0)
	for _, row := range s.rows {
		if filter.Matches(row) {
			items = append(items, row)
		}
	}

	return items, nil
}

func (s *InMemoryStore) Batches(ctx context.Context) ([]entity.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.batches), nil
}

// Len returns the number of stored rows.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rows)
}
