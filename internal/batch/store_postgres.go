package batch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coldchain/pkg/domain"
	"coldchain/pkg/platform/sentinel"
)

// Postgres persists the batch ledger. The next id is derived from the current
// ledger length inside a transaction; the single-writer gate upstream means
// two Appends never race, so the numbering stays dense without a sequence
// (sequences leak gaps on rollback).
//
//	CREATE TABLE vaccine_batches (
//	    id           BIGINT PRIMARY KEY,
//	    brand        TEXT  NOT NULL,
//	    manufacturer BYTEA NOT NULL CHECK (octet_length(manufacturer) = 20)
//	);
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Append(ctx context.Context, brand string, manufacturer domain.EntityID) (VaccineBatch, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VaccineBatch{}, fmt.Errorf("begin append batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var next uint64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id) + 1, 0) FROM vaccine_batches`,
	).Scan(&next); err != nil {
		return VaccineBatch{}, fmt.Errorf("next batch id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO vaccine_batches (id, brand, manufacturer) VALUES ($1, $2, $3)`,
		next, brand, manufacturer.Address().Bytes(),
	); err != nil {
		return VaccineBatch{}, fmt.Errorf("insert batch: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return VaccineBatch{}, fmt.Errorf("commit batch: %w", err)
	}
	return VaccineBatch{ID: domain.BatchID(next), Brand: brand, Manufacturer: manufacturer}, nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.BatchID) (VaccineBatch, error) {
	var (
		brand        string
		manufacturer []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT brand, manufacturer FROM vaccine_batches WHERE id = $1`, uint64(id),
	).Scan(&brand, &manufacturer)
	if errors.Is(err, sql.ErrNoRows) {
		return VaccineBatch{}, sentinel.ErrNotFound
	}
	if err != nil {
		return VaccineBatch{}, fmt.Errorf("find batch: %w", err)
	}
	var m domain.EntityID
	copy(m[:], manufacturer)
	return VaccineBatch{ID: id, Brand: brand, Manufacturer: m}, nil
}
