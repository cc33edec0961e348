// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/fieldtally/models"
)

// AlreadySubmitted reports whether the guard flag is set for a draft key,
// meaning this device has already completed a successful submission.
func (s *Store) AlreadySubmitted(key string) (bool, error) {
	var flag string
	err := s.db.QueryRow(`
		SELECT flag FROM submission_guard WHERE draft_key = $1
	`, key).Scan(&flag)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read submission guard %s: %w", key, err)
	}
	return flag == "1", nil
}

// MarkSubmitted records a confirmed remote acknowledgment: the guard row and
// the finalized draft payload are written in one transaction, guard first,
// so a crash can never leave a submitted draft without its guard.
func (s *Store) MarkSubmitted(d models.ResultDraft, now time.Time) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", d.StorageKey(), err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO submission_guard (draft_key, flag, submitted_at)
		VALUES ($1, '1', $2)
		ON CONFLICT (draft_key) DO NOTHING
	`, d.StorageKey(), now)
	if err != nil {
		return fmt.Errorf("failed to set submission guard %s: %w", d.StorageKey(), err)
	}

	_, err = tx.Exec(`
		INSERT INTO draft (key, form, entity_id, payload, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, d.StorageKey(), d.FormKind(), d.EntityID(), string(payload), now)
	if err != nil {
		return fmt.Errorf("failed to finalize draft %s: %w", d.StorageKey(), err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission %s: %w", d.StorageKey(), err)
	}
	return nil
}

// EnsureDeviceID returns the stable device identity, generating and
// persisting a UUID on first boot.
func (s *Store) EnsureDeviceID(now time.Time) (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM device LIMIT 1`).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to read device identity: %w", err)
	}

	id = uuid.NewString()
	if _, err := s.db.Exec(`
		INSERT INTO device (id, created_at) VALUES ($1, $2)
	`, id, now); err != nil {
		return "", fmt.Errorf("failed to persist device identity: %w", err)
	}
	return id, nil
}
