package audit

import (
	"time"

	"github.com/google/uuid"

	"coldchain/pkg/domain"
)

// Action names the mutation an event records. The set is closed: one action
// per owner-gated write path.
type Action string

const (
	ActionAddEntity        Action = "AddEntity"
	ActionAddVaccineBatch  Action = "AddVaccineBatch"
	ActionIssueCertificate Action = "IssueCertificate"
)

// Event is emitted from the ledger services after a write commits. Exactly
// one payload field is set, matching Action; the field sets are fixed and
// form the externally observable audit contract. Keep it transport-agnostic
// so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`

	AddEntity        *AddEntity        `json:"add_entity,omitempty"`
	AddVaccineBatch  *AddVaccineBatch  `json:"add_vaccine_batch,omitempty"`
	IssueCertificate *IssueCertificate `json:"issue_certificate,omitempty"`
}

// AddEntity records a successful entity registration.
type AddEntity struct {
	EntityID   domain.EntityID `json:"entity_id"`
	EntityMode domain.Role     `json:"entity_mode"`
}

// AddVaccineBatch records a successful batch creation.
type AddVaccineBatch struct {
	VaccineBatchID domain.BatchID  `json:"vaccine_batch_id"`
	Manufacturer   domain.EntityID `json:"manufacturer"`
}

// IssueCertificate records a successful certificate issuance.
type IssueCertificate struct {
	Issuer        domain.EntityID      `json:"issuer"`
	Prover        domain.EntityID      `json:"prover"`
	CertificateID domain.CertificateID `json:"certificate_id"`
}

// NewAddEntity builds an AddEntity event.
func NewAddEntity(entityID domain.EntityID, mode domain.Role) Event {
	return Event{
		Action:    ActionAddEntity,
		AddEntity: &AddEntity{EntityID: entityID, EntityMode: mode},
	}
}

// NewAddVaccineBatch builds an AddVaccineBatch event.
func NewAddVaccineBatch(batchID domain.BatchID, manufacturer domain.EntityID) Event {
	return Event{
		Action:          ActionAddVaccineBatch,
		AddVaccineBatch: &AddVaccineBatch{VaccineBatchID: batchID, Manufacturer: manufacturer},
	}
}

// NewIssueCertificate builds an IssueCertificate event.
func NewIssueCertificate(issuer, prover domain.EntityID, certID domain.CertificateID) Event {
	return Event{
		Action:           ActionIssueCertificate,
		IssueCertificate: &IssueCertificate{Issuer: issuer, Prover: prover, CertificateID: certID},
	}
}
