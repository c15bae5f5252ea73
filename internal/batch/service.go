package batch

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"coldchain/internal/accesscontrol"
	"coldchain/internal/audit"
	"coldchain/internal/registry"
	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
	"coldchain/pkg/platform/sentinel"
)

// EntityResolver is the slice of the registry this ledger needs.
type EntityResolver interface {
	GetEntity(ctx context.Context, id domain.EntityID) (registry.Entity, error)
}

// Service orchestrates batch creation. Writes pass through the access
// controller; reads hit the store directly.
type Service struct {
	gate     *accesscontrol.Controller
	store    Store
	entities EntityResolver
	auditor  *audit.Publisher
	logger   *slog.Logger
}

func NewService(gate *accesscontrol.Controller, store Store, entities EntityResolver, auditor *audit.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gate: gate, store: store, entities: entities, auditor: auditor, logger: logger}
}

// AddVaccineBatch records a manufactured batch. Owner-gated. The manufacturer
// must be a registered entity; its role is not checked, matching the observed
// contract (manufacturers register as PROVER but any registered identity is
// accepted). The id counter advances only after validation passes.
func (s *Service) AddVaccineBatch(ctx context.Context, brand string, manufacturer domain.EntityID) (VaccineBatch, error) {
	var created VaccineBatch
	err := s.gate.Write(ctx, func(ctx context.Context) error {
		brand = strings.TrimSpace(brand)
		if brand == "" {
			return dErrors.New(dErrors.CodeBadRequest, "batch brand is required")
		}
		if _, err := s.entities.GetEntity(ctx, manufacturer); err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "manufacturer is not a registered entity")
			}
			return err
		}

		b, err := s.store.Append(ctx, brand, manufacturer)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store batch")
		}
		if err := s.auditor.Emit(ctx, audit.NewAddVaccineBatch(b.ID, b.Manufacturer)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit batch creation")
		}
		created = b
		return nil
	})
	if err != nil {
		return VaccineBatch{}, err
	}

	s.logger.InfoContext(ctx, "vaccine batch added",
		"batch_id", created.ID,
		"brand", created.Brand,
		"manufacturer", created.Manufacturer,
	)
	return created, nil
}

// GetVaccineBatch returns the stored batch. Unrestricted read.
func (s *Service) GetVaccineBatch(ctx context.Context, id domain.BatchID) (VaccineBatch, error) {
	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return VaccineBatch{}, dErrors.New(dErrors.CodeNotFound, "vaccine batch not found")
		}
		return VaccineBatch{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load batch")
	}
	return b, nil
}
