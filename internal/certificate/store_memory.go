package certificate

import (
	"context"
	"sync"

	"coldchain/pkg/domain"
	"coldchain/pkg/platform/sentinel"
)

// InMemory keeps certificates in a slice indexed by id; the next id is the
// ledger length.
type InMemory struct {
	mu    sync.RWMutex
	certs []Certificate
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, issuer, prover domain.EntityID, status domain.CustodyState, batchID domain.BatchID, signature []byte) (Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cert := Certificate{
		ID:             domain.CertificateID(len(s.certs)),
		Issuer:         issuer,
		Prover:         prover,
		Status:         status,
		VaccineBatchID: batchID,
		Signature:      append([]byte(nil), signature...),
	}
	s.certs = append(s.certs, cert)
	return cert, nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.CertificateID) (Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) >= len(s.certs) {
		return Certificate{}, sentinel.ErrNotFound
	}
	return s.certs[id], nil
}
