// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/fieldtally/models"
	"github.com/danielhkuo/fieldtally/testutil"
)

func TestCreateConstituency(t *testing.T) {
	mux, _, _, _ := setupServer(t)

	body := models.CreateConstituencyRequest{
		ConstituencyID:   "117",
		ConstituencyName: "Test Constituency",
		Candidates:       testutil.Candidates(),
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/constituencies", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateDraftResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Key != models.ConstituencyKey("117") {
		t.Errorf("Expected constituency key, got %q", resp.Key)
	}

	// Same-id station namespace stays independent.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/stations/117", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCreateConstituencyRequiresID(t *testing.T) {
	mux, _, _, _ := setupServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/constituencies",
		models.CreateConstituencyRequest{Candidates: testutil.Candidates()}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestConstituencyEditFlow(t *testing.T) {
	mux, st, _, _ := setupServer(t)
	testutil.CreateTestConstituency(t, st, "117", 0)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/api/constituencies/117/votes",
		models.SetVoteRequest{Index: 1, Value: "3900"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	officer := "R. Officer"
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/api/constituencies/117/details",
		models.ConstituencyDetailsRequest{ReturningOfficer: &officer}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ConstituencyDraftResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Draft.Entries[1].Votes != 3900 {
		t.Errorf("Expected 3900 votes, got %d", resp.Draft.Entries[1].Votes)
	}
	if resp.Draft.ReturningOfficer != "R. Officer" {
		t.Errorf("Expected officer set, got %q", resp.Draft.ReturningOfficer)
	}
	if resp.State != models.StateDrafted {
		t.Errorf("Expected drafted state, got %s", resp.State)
	}
}

func TestSubmitConstituency(t *testing.T) {
	mux, st, _, sub := setupServer(t)
	testutil.CreateTestConstituency(t, st, "117", 0)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/api/constituencies/117/votes",
		models.SetVoteRequest{Index: 0, Value: "4100"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/constituencies/117/submit", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	if sub.Last.Form != models.Form34B {
		t.Errorf("Expected 34b payload, got %q", sub.Last.Form)
	}
	if sub.Last.EntityID != "117" {
		t.Errorf("Expected entity 117, got %q", sub.Last.EntityID)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/constituencies/117/submit", nil, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)
	if sub.Calls != 1 {
		t.Errorf("Second submit reached the network: %d calls", sub.Calls)
	}
}
