// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/fieldtally/engine"
	"github.com/danielhkuo/fieldtally/handlers"
	"github.com/danielhkuo/fieldtally/models"
	"github.com/danielhkuo/fieldtally/router"
	"github.com/danielhkuo/fieldtally/store"
	"github.com/danielhkuo/fieldtally/testutil"
)

type fakeLister struct {
	candidates []models.Candidate
	err        error
	scope      string
}

func (f *fakeLister) List(ctx context.Context, scope string) ([]models.Candidate, error) {
	f.scope = scope
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func setupWithLister(t *testing.T, lister *fakeLister) *http.ServeMux {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	eng := engine.New(st, &testutil.FakeOCR{}, &testutil.FakeSubmitter{}, "device-1")
	var src handlers.CandidateLister
	if lister != nil {
		src = lister
	}
	return router.NewRouter(st, eng, src, testutil.GetTestConfig())
}

func TestListCandidates(t *testing.T) {
	lister := &fakeLister{candidates: testutil.Candidates()}
	mux := setupWithLister(t, lister)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/candidates?scope=presidential", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var got []models.Candidate
	testutil.AssertJSON(t, w, &got)
	if len(got) != 2 || got[0].Name != "Jane Doe" {
		t.Errorf("Unexpected candidate list: %+v", got)
	}
	if lister.scope != "presidential" {
		t.Errorf("Expected scope forwarded, got %q", lister.scope)
	}
}

func TestListCandidatesUpstreamError(t *testing.T) {
	mux := setupWithLister(t, &fakeLister{err: errors.New("upstream down")})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/candidates", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadGateway)
}

func TestListCandidatesUnconfigured(t *testing.T) {
	mux := setupWithLister(t, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/candidates", nil, nil))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}
