package certificate

import (
	"context"

	"coldchain/pkg/domain"
)

// Store is the append-only certificate ledger with its own dense id counter,
// independent of batch numbering. Append runs only after the service has
// validated every precondition.
type Store interface {
	Append(ctx context.Context, issuer, prover domain.EntityID, status domain.CustodyState, batchID domain.BatchID, signature []byte) (Certificate, error)
	// FindByID returns the certificate or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id domain.CertificateID) (Certificate, error)
}
