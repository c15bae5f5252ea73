// Package postgres persists audit events to the audit_events table. The
// table is append-only: no update or delete statement exists in this package,
// and external consumers read through the registry API, never the table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"coldchain/internal/audit"
)

// Schema for reference; migrations live with the deployment tooling.
//
//	CREATE TABLE audit_events (
//	    seq        BIGSERIAL PRIMARY KEY,
//	    id         UUID        NOT NULL UNIQUE,
//	    occurred_at TIMESTAMPTZ NOT NULL,
//	    action     TEXT        NOT NULL,
//	    payload    JSONB       NOT NULL
//	);
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_events (id, occurred_at, action, payload) VALUES ($1, $2, $3, $4)`,
		event.ID, event.Timestamp, string(event.Action), payload,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM audit_events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		var event audit.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("unmarshal audit event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
