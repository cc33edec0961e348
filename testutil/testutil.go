// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/fieldtally/cliparse"
	"github.com/danielhkuo/fieldtally/db"
	"github.com/danielhkuo/fieldtally/models"
	"github.com/danielhkuo/fieldtally/store"
	"github.com/danielhkuo/fieldtally/tally"
)

// SetupTestDB creates a fresh sqlite database in a per-test temp dir with
// the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "fieldtally_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4034,
		DatabaseType: "sqlite",
		OCRURL:       "http://ocr.invalid",
		SubmitURL:    "http://submit.invalid",
		AgentKeySalt: "test-agent-salt",
	}
}

// Candidates returns the standard two-candidate canonical list used across
// tests
func Candidates() []models.Candidate {
	return []models.Candidate{
		{ID: 1, Name: "Jane Doe", Party: "ABC"},
		{ID: 2, Name: "John Roe", Party: "XYZ"},
	}
}

// CreateTestStation creates and persists a fresh 34A draft, returning it
func CreateTestStation(t *testing.T, st *store.Store, stationID string, registered int) *models.StationResultDraft {
	t.Helper()

	draft := tally.NewStationDraft(models.CreateStationRequest{
		StationID:        stationID,
		StationName:      "Test Primary School",
		Ward:             "Test Ward",
		Constituency:     "Test Constituency",
		County:           "Test County",
		RegisteredVoters: registered,
	}, Candidates(), time.Now())

	if err := st.SaveDraft(draft); err != nil {
		t.Fatalf("Failed to persist test draft: %v", err)
	}
	return draft
}

// CreateTestConstituency creates and persists a fresh 34B draft
func CreateTestConstituency(t *testing.T, st *store.Store, constituencyID string, registered int) *models.ConstituencyResultDraft {
	t.Helper()

	draft := tally.NewConstituencyDraft(models.CreateConstituencyRequest{
		ConstituencyID:   constituencyID,
		ConstituencyName: "Test Constituency",
		County:           "Test County",
		RegisteredVoters: registered,
	}, Candidates(), time.Now())

	if err := st.SaveDraft(draft); err != nil {
		t.Fatalf("Failed to persist test draft: %v", err)
	}
	return draft
}

// FakeOCR is a canned OCRService implementation
type FakeOCR struct {
	Response *models.OCRResponse
	Err      error
	Calls    int
}

func (f *FakeOCR) Recognize(ctx context.Context, form, entityID, filename, mimeType string, image []byte) (*models.OCRResponse, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Response, nil
}

// FakeSubmitter is a canned Submitter implementation
type FakeSubmitter struct {
	Ack   *models.SubmissionAck
	Err   error
	Calls int
	Last  models.SubmissionPayload
}

func (f *FakeSubmitter) Submit(ctx context.Context, payload models.SubmissionPayload) (*models.SubmissionAck, error) {
	f.Calls++
	f.Last = payload
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Ack != nil {
		return f.Ack, nil
	}
	return &models.SubmissionAck{Status: "ok", Ref: "ref-1"}, nil
}

// Float returns a pointer to f, for optional OCR scalar fields
func Float(f float64) *float64 {
	return &f
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
