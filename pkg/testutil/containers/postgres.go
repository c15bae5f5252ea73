//go:build integration

// Package containers starts throwaway infrastructure for integration tests.
package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema mirrors the table definitions documented on the Postgres stores.
const schema = `
CREATE TABLE IF NOT EXISTS entities (
    id   BYTEA PRIMARY KEY CHECK (octet_length(id) = 20),
    mode SMALLINT NOT NULL CHECK (mode BETWEEN 0 AND 2)
);
CREATE TABLE IF NOT EXISTS vaccine_batches (
    id           BIGINT PRIMARY KEY,
    brand        TEXT  NOT NULL,
    manufacturer BYTEA NOT NULL CHECK (octet_length(manufacturer) = 20)
);
CREATE TABLE IF NOT EXISTS certificates (
    id               BIGINT PRIMARY KEY,
    issuer           BYTEA    NOT NULL CHECK (octet_length(issuer) = 20),
    prover           BYTEA    NOT NULL CHECK (octet_length(prover) = 20),
    status           SMALLINT NOT NULL CHECK (status BETWEEN 0 AND 4),
    vaccine_batch_id BIGINT   NOT NULL REFERENCES vaccine_batches (id),
    signature        BYTEA    NOT NULL
);
CREATE TABLE IF NOT EXISTS audit_events (
    seq         BIGSERIAL PRIMARY KEY,
    id          UUID        NOT NULL UNIQUE,
    occurred_at TIMESTAMPTZ NOT NULL,
    action      TEXT        NOT NULL,
    payload     JSONB       NOT NULL
);
`

// PostgresContainer wraps a testcontainers Postgres instance with the
// registry schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
}

// NewPostgresContainer starts a Postgres container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("coldchain"),
		tcpostgres.WithUsername("coldchain"),
		tcpostgres.WithPassword("coldchain"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	pc := &PostgresContainer{Container: container, DB: db}
	t.Cleanup(func() {
		_ = pc.DB.Close()
		_ = pc.Container.Terminate(context.Background())
	})
	return pc
}

// TruncateTables empties the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return err
		}
	}
	return nil
}
