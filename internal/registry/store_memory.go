package registry

import (
	"context"
	"sync"

	"coldchain/pkg/domain"
	"coldchain/pkg/platform/sentinel"
)

// InMemory keeps the registry in a map. It intentionally favors clarity over
// performance; the service's write gate already serializes mutations, the
// RWMutex only protects concurrent readers.
type InMemory struct {
	mu       sync.RWMutex
	entities map[domain.EntityID]Entity
}

func NewInMemory() *InMemory {
	return &InMemory{entities: make(map[domain.EntityID]Entity)}
}

func (s *InMemory) CreateIfAbsent(_ context.Context, entity Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[entity.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.entities[entity.ID] = entity
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.EntityID) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entity, ok := s.entities[id]; ok {
		return entity, nil
	}
	return Entity{}, sentinel.ErrNotFound
}
