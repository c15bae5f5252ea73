// Package certificate is the ledger of custody attestations. A certificate
// records that a named issuer certified a batch's custody state on behalf of
// a prover, backed by a signature that is stored verbatim at issuance and
// checked only on demand through the verifier.
package certificate

import (
	"coldchain/pkg/domain"
)

// Certificate is immutable after issuance. Signature is the raw 65-byte
// recoverable signature exactly as supplied by the caller; it is an
// unverified claim until IsMatchingSignature is asked about it.
type Certificate struct {
	ID             domain.CertificateID `json:"id"`
	Issuer         domain.EntityID      `json:"issuer"`
	Prover         domain.EntityID      `json:"prover"`
	Status         domain.CustodyState  `json:"status"`
	VaccineBatchID domain.BatchID       `json:"vaccine_batch_id"`
	Signature      []byte               `json:"signature"`
}
