package data

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS journey_batch (
		id            UUID PRIMARY KEY,
		format        TEXT NOT NULL,
		journey_count INTEGER NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS journey (
		batch_id         UUID NOT NULL REFERENCES journey_batch (id) ON DELETE CASCADE,
		seq              INTEGER NOT NULL,
		journey_date     DATE NOT NULL,
		journey          TEXT NOT NULL,
		charge_abs       DOUBLE PRECISION NOT NULL,
		start_time       TEXT,
		end_time         TEXT,
		hour             INTEGER,
		duration_minutes DOUBLE PRECISION,
		journey_type     TEXT NOT NULL,
		capped           TEXT,
		inferred_line    TEXT NOT NULL,
		confidence       TEXT NOT NULL,
		PRIMARY KEY (batch_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS journey_batch_date_idx ON journey (batch_id, journey_date DESC, seq)`,
}

// EnsureSchema creates the batch tables if they do not exist yet.
func (dc *DataClient) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := dc.pg.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
