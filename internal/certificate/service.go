package certificate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coldchain/internal/accesscontrol"
	"coldchain/internal/audit"
	"coldchain/internal/batch"
	certmetrics "coldchain/internal/certificate/metrics"
	"coldchain/internal/registry"
	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
	"coldchain/pkg/platform/sentinel"
)

// EntityResolver is the slice of the registry this ledger needs.
type EntityResolver interface {
	GetEntity(ctx context.Context, id domain.EntityID) (registry.Entity, error)
}

// BatchResolver is the slice of the batch ledger this ledger needs.
type BatchResolver interface {
	GetVaccineBatch(ctx context.Context, id domain.BatchID) (batch.VaccineBatch, error)
}

// Service orchestrates certificate issuance and on-demand signature
// verification. Issuance is owner-gated; verification and lookups are
// unrestricted reads.
type Service struct {
	gate     *accesscontrol.Controller
	store    Store
	entities EntityResolver
	batches  BatchResolver
	auditor  *audit.Publisher
	metrics  *certmetrics.Metrics
	logger   *slog.Logger
}

func NewService(gate *accesscontrol.Controller, store Store, entities EntityResolver, batches BatchResolver, auditor *audit.Publisher, metrics *certmetrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gate:     gate,
		store:    store,
		entities: entities,
		batches:  batches,
		auditor:  auditor,
		metrics:  metrics,
		logger:   logger,
	}
}

// IssueCertificate records a custody attestation. Owner-gated. The issuer
// must hold role ISSUER, the prover role PROVER, and the batch must exist.
// The signature is stored verbatim and deliberately not verified here: the
// owner acts as a relayer for attestations signed out-of-band, and trust is
// re-derivable at any time through IsMatchingSignature without re-running
// the write path. The certificate counter advances only after every
// precondition has passed.
func (s *Service) IssueCertificate(ctx context.Context, issuer, prover domain.EntityID, status domain.CustodyState, batchID domain.BatchID, signature []byte) (Certificate, error) {
	start := time.Now()
	var issued Certificate
	err := s.gate.Write(ctx, func(ctx context.Context) error {
		if !status.Valid() {
			return dErrors.New(dErrors.CodeBadRequest, "unrecognized custody state")
		}
		if len(signature) != signatureLength {
			return dErrors.New(dErrors.CodeBadRequest, "signature must be 65 bytes")
		}
		if err := s.requireRole(ctx, issuer, domain.RoleIssuer, "issuer"); err != nil {
			return err
		}
		if err := s.requireRole(ctx, prover, domain.RoleProver, "prover"); err != nil {
			return err
		}
		if _, err := s.batches.GetVaccineBatch(ctx, batchID); err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "vaccine batch not found")
			}
			return err
		}

		cert, err := s.store.Append(ctx, issuer, prover, status, batchID, signature)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store certificate")
		}
		if err := s.auditor.Emit(ctx, audit.NewIssueCertificate(cert.Issuer, cert.Prover, cert.ID)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit certificate issuance")
		}
		issued = cert
		return nil
	})
	if err != nil {
		return Certificate{}, err
	}

	if s.metrics != nil {
		s.metrics.IncrementIssued()
		s.metrics.ObserveIssue(start)
	}
	s.logger.InfoContext(ctx, "certificate issued",
		"certificate_id", issued.ID,
		"issuer", issued.Issuer,
		"prover", issued.Prover,
		"status", issued.Status,
		"batch_id", issued.VaccineBatchID,
	)
	return issued, nil
}

func (s *Service) requireRole(ctx context.Context, id domain.EntityID, role domain.Role, field string) error {
	entity, err := s.entities.GetEntity(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return dErrors.New(dErrors.CodeNotFound, field+" is not a registered entity")
		}
		return err
	}
	if entity.Mode != role {
		return dErrors.New(dErrors.CodeInvalidRole, field+" must hold role "+role.String())
	}
	return nil
}

// GetCertificate returns the stored certificate. Unrestricted read.
func (s *Service) GetCertificate(ctx context.Context, id domain.CertificateID) (Certificate, error) {
	cert, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Certificate{}, dErrors.New(dErrors.CodeNotFound, "certificate not found")
		}
		return Certificate{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	return cert, nil
}

// IsMatchingSignature reports whether the certificate's recorded signature
// was produced by claimedSigner over messageHash. Unrestricted, repeatable
// read. The caller must reconstruct the message with CertificationMessage;
// any deviation changes the hash and the outcome. A mismatch — including a
// stored signature that does not recover at all — is a definite false, never
// an error; failure signaling is reserved for an unknown certificate id.
func (s *Service) IsMatchingSignature(ctx context.Context, messageHash []byte, id domain.CertificateID, claimedSigner domain.EntityID) (bool, error) {
	start := time.Now()
	cert, err := s.GetCertificate(ctx, id)
	if err != nil {
		return false, err
	}

	match := false
	recovered, err := RecoverSigner(messageHash, cert.Signature)
	if err != nil {
		s.logger.DebugContext(ctx, "signature recovery failed",
			"certificate_id", id,
			"error", err,
		)
	} else {
		match = recovered == claimedSigner
	}

	if s.metrics != nil {
		outcome := "mismatch"
		if match {
			outcome = "match"
		}
		s.metrics.IncrementVerification(outcome)
		s.metrics.ObserveVerify(start)
	}
	return match, nil
}
