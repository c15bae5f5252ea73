// Package memory provides the in-memory audit store. It favors clarity over
// performance and backs unit tests and single-process deployments.
package memory

import (
	"context"
	"sync"

	"coldchain/internal/audit"
)

// Store keeps committed events in append order.
type Store struct {
	mu     sync.RWMutex
	events []audit.Event
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *Store) List(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}
