package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"coldchain/pkg/domain"
	"coldchain/pkg/platform/sentinel"
)

// Postgres persists entities. Uniqueness of the id is enforced by the
// primary key, so first-writer-wins holds even outside the write gate.
//
//	CREATE TABLE entities (
//	    id   BYTEA PRIMARY KEY CHECK (octet_length(id) = 20),
//	    mode SMALLINT NOT NULL CHECK (mode BETWEEN 0 AND 2)
//	);
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfAbsent(ctx context.Context, entity Entity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entities (id, mode) VALUES ($1, $2)`,
		entity.ID.Address().Bytes(), int16(entity.Mode),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert entity: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.EntityID) (Entity, error) {
	var mode int16
	err := s.db.QueryRowContext(ctx,
		`SELECT mode FROM entities WHERE id = $1`,
		id.Address().Bytes(),
	).Scan(&mode)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Entity{}, fmt.Errorf("find entity: %w", err)
	}
	return Entity{ID: id, Mode: domain.Role(mode)}, nil
}
