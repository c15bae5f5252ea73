// Package registry stores participant identities and their capability role.
// Entities are created once via registration and immutable thereafter;
// re-registering a used id is rejected so role history can never be rewritten
// under issued certificates.
package registry

import (
	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
)

// Entity is a registered participant.
//
// Invariants:
//   - ID is a non-zero address, unique for the registry's lifetime
//   - Mode is one of the closed Role set
//   - Both are immutable after registration
type Entity struct {
	ID   domain.EntityID `json:"id"`
	Mode domain.Role     `json:"mode"`
}

// NewEntity validates and builds an Entity.
func NewEntity(id domain.EntityID, mode domain.Role) (Entity, error) {
	if id.IsZero() {
		return Entity{}, dErrors.New(dErrors.CodeBadRequest, "entity id cannot be the zero address")
	}
	if !mode.Valid() {
		return Entity{}, dErrors.New(dErrors.CodeInvalidRole, "unrecognized entity role")
	}
	return Entity{ID: id, Mode: mode}, nil
}
