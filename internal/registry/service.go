package registry

import (
	"context"
	"errors"
	"log/slog"

	"coldchain/internal/accesscontrol"
	"coldchain/internal/audit"
	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
	"coldchain/pkg/platform/sentinel"
)

// Service orchestrates entity registration. Writes pass through the access
// controller; reads hit the store directly.
type Service struct {
	gate    *accesscontrol.Controller
	store   Store
	auditor *audit.Publisher
	logger  *slog.Logger
}

func NewService(gate *accesscontrol.Controller, store Store, auditor *audit.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gate: gate, store: store, auditor: auditor, logger: logger}
}

// AddEntity registers a participant. Owner-gated. A duplicate id is rejected:
// overwriting would let the owner rewrite a participant's role underneath
// certificates that already reference it.
func (s *Service) AddEntity(ctx context.Context, id domain.EntityID, mode domain.Role) (Entity, error) {
	var entity Entity
	err := s.gate.Write(ctx, func(ctx context.Context) error {
		e, err := NewEntity(id, mode)
		if err != nil {
			return err
		}
		if err := s.store.CreateIfAbsent(ctx, e); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "entity id already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store entity")
		}
		if err := s.auditor.Emit(ctx, audit.NewAddEntity(e.ID, e.Mode)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit entity registration")
		}
		entity = e
		return nil
	})
	if err != nil {
		return Entity{}, err
	}

	s.logger.InfoContext(ctx, "entity registered", "entity_id", entity.ID, "mode", entity.Mode)
	return entity, nil
}

// GetEntity returns the stored entity. Unrestricted read.
func (s *Service) GetEntity(ctx context.Context, id domain.EntityID) (Entity, error) {
	entity, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Entity{}, dErrors.New(dErrors.CodeNotFound, "entity not registered")
		}
		return Entity{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load entity")
	}
	return entity, nil
}
