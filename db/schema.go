// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed by the agent.
// Safe to call multiple times - uses IF NOT EXISTS.
// The SQL stays in the common subset sqlite and postgres both accept:
// no NOW() defaults (timestamps are set from Go) and plain TEXT payloads.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Drafts: one JSON document per station/constituency key
CREATE TABLE IF NOT EXISTS draft (
    key TEXT PRIMARY KEY,
    form TEXT NOT NULL,
    entity_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_draft_form ON draft(form);

-- Submission guard: the source of truth for "may this entity submit again
-- on this device". Deliberately decoupled from draft content so clearing a
-- draft cannot re-enable a duplicate submission.
CREATE TABLE IF NOT EXISTS submission_guard (
    draft_key TEXT PRIMARY KEY,
    flag TEXT NOT NULL DEFAULT '1',
    submitted_at TIMESTAMP NOT NULL
);

-- Device identity: single row, generated on first boot
CREATE TABLE IF NOT EXISTS device (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL
);
`
