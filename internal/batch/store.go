package batch

import (
	"context"

	"coldchain/pkg/domain"
)

// Store is the append-only batch ledger. Append assigns the next dense id;
// it runs only after the service has validated every precondition, which is
// what keeps the numbering gapless under failed attempts.
type Store interface {
	Append(ctx context.Context, brand string, manufacturer domain.EntityID) (VaccineBatch, error)
	// FindByID returns the batch or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id domain.BatchID) (VaccineBatch, error)
}
