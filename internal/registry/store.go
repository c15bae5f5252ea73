package registry

import (
	"context"

	"coldchain/pkg/domain"
)

// Store is interface-driven to keep the service testable and to allow
// swapping in-memory and Postgres persistence without rewiring business code.
type Store interface {
	// CreateIfAbsent stores the entity, returning sentinel.ErrAlreadyUsed if
	// the id is already registered. First writer wins.
	CreateIfAbsent(ctx context.Context, entity Entity) error
	// FindByID returns the entity or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id domain.EntityID) (Entity, error)
}
