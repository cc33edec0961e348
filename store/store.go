// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/fieldtally/models"
)

// Store persists result drafts and the submission guard in the local
// database. One JSON document per storage key; the schema is additive-only,
// so decoding ignores unknown fields and zero-fills missing ones.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveDraft writes the draft's current state under its storage key,
// replacing any previous payload for that key.
func (s *Store) SaveDraft(d models.ResultDraft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", d.StorageKey(), err)
	}

	_, err = s.db.Exec(`
		INSERT INTO draft (key, form, entity_id, payload, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, d.StorageKey(), d.FormKind(), d.EntityID(), string(payload), d.Core().UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to persist draft %s: %w", d.StorageKey(), err)
	}
	return nil
}

// LoadStation reads the 34A draft for a station. The second return is false
// when no draft exists. A payload that no longer parses is treated as
// absent rather than an error: losing one unsaved edit is cheaper than
// blocking the capture workflow.
func (s *Store) LoadStation(stationID string) (*models.StationResultDraft, bool, error) {
	payload, ok, err := s.loadPayload(models.StationKey(stationID))
	if err != nil || !ok {
		return nil, false, err
	}

	var d models.StationResultDraft
	if err := json.Unmarshal(payload, &d); err != nil {
		slog.Warn("discarding unreadable station draft", "station_id", stationID, "error", err)
		return nil, false, nil
	}
	return &d, true, nil
}

// LoadConstituency reads the 34B draft for a constituency.
func (s *Store) LoadConstituency(constituencyID string) (*models.ConstituencyResultDraft, bool, error) {
	payload, ok, err := s.loadPayload(models.ConstituencyKey(constituencyID))
	if err != nil || !ok {
		return nil, false, err
	}

	var d models.ConstituencyResultDraft
	if err := json.Unmarshal(payload, &d); err != nil {
		slog.Warn("discarding unreadable constituency draft", "constituency_id", constituencyID, "error", err)
		return nil, false, nil
	}
	return &d, true, nil
}

func (s *Store) loadPayload(key string) ([]byte, bool, error) {
	var payload string
	err := s.db.QueryRow(`
		SELECT payload FROM draft WHERE key = $1
	`, key).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read draft %s: %w", key, err)
	}
	return []byte(payload), true, nil
}

// Clear removes the draft for a key. The submission guard for the key is
// intentionally left in place.
func (s *Store) Clear(key string) error {
	_, err := s.db.Exec(`DELETE FROM draft WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to clear draft %s: %w", key, err)
	}
	return nil
}
