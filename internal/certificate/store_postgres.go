package certificate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coldchain/pkg/domain"
	"coldchain/pkg/platform/sentinel"
)

// Postgres persists the certificate ledger. Same dense-id discipline as the
// batch ledger: the next id is computed in the insert transaction and the
// upstream single-writer gate keeps Appends from racing.
//
//	CREATE TABLE certificates (
//	    id               BIGINT PRIMARY KEY,
//	    issuer           BYTEA    NOT NULL CHECK (octet_length(issuer) = 20),
//	    prover           BYTEA    NOT NULL CHECK (octet_length(prover) = 20),
//	    status           SMALLINT NOT NULL CHECK (status BETWEEN 0 AND 4),
//	    vaccine_batch_id BIGINT   NOT NULL REFERENCES vaccine_batches (id),
//	    signature        BYTEA    NOT NULL
//	);
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Append(ctx context.Context, issuer, prover domain.EntityID, status domain.CustodyState, batchID domain.BatchID, signature []byte) (Certificate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Certificate{}, fmt.Errorf("begin append certificate: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var next uint64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id) + 1, 0) FROM certificates`,
	).Scan(&next); err != nil {
		return Certificate{}, fmt.Errorf("next certificate id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO certificates (id, issuer, prover, status, vaccine_batch_id, signature)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		next, issuer.Address().Bytes(), prover.Address().Bytes(),
		int16(status), uint64(batchID), signature,
	); err != nil {
		return Certificate{}, fmt.Errorf("insert certificate: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Certificate{}, fmt.Errorf("commit certificate: %w", err)
	}
	return Certificate{
		ID:             domain.CertificateID(next),
		Issuer:         issuer,
		Prover:         prover,
		Status:         status,
		VaccineBatchID: batchID,
		Signature:      append([]byte(nil), signature...),
	}, nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.CertificateID) (Certificate, error) {
	var (
		issuer, prover, signature []byte
		status                    int16
		batchID                   uint64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT issuer, prover, status, vaccine_batch_id, signature
		 FROM certificates WHERE id = $1`, uint64(id),
	).Scan(&issuer, &prover, &status, &batchID, &signature)
	if errors.Is(err, sql.ErrNoRows) {
		return Certificate{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Certificate{}, fmt.Errorf("find certificate: %w", err)
	}

	cert := Certificate{
		ID:             id,
		Status:         domain.CustodyState(status),
		VaccineBatchID: domain.BatchID(batchID),
		Signature:      signature,
	}
	copy(cert.Issuer[:], issuer)
	copy(cert.Prover[:], prover)
	return cert, nil
}
