package batch

import (
	"context"
	"sync"

	"coldchain/pkg/domain"
	"coldchain/pkg/platform/sentinel"
)

// InMemory keeps batches in a slice indexed by id, which makes the dense
// numbering invariant structural: the next id is always the ledger length.
type InMemory struct {
	mu      sync.RWMutex
	batches []VaccineBatch
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, brand string, manufacturer domain.EntityID) (VaccineBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := VaccineBatch{
		ID:           domain.BatchID(len(s.batches)),
		Brand:        brand,
		Manufacturer: manufacturer,
	}
	s.batches = append(s.batches, b)
	return b, nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.BatchID) (VaccineBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) >= len(s.batches) {
		return VaccineBatch{}, sentinel.ErrNotFound
	}
	return s.batches[id], nil
}
