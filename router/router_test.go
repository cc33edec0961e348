// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/fieldtally/engine"
	"github.com/danielhkuo/fieldtally/store"
	"github.com/danielhkuo/fieldtally/testutil"
)

func setupRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	eng := engine.New(st, &testutil.FakeOCR{}, &testutil.FakeSubmitter{}, "device-1")
	return NewRouter(st, eng, nil, testutil.GetTestConfig())
}

func TestHealthEndpoint(t *testing.T) {
	mux := setupRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK body, got %q", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := setupRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "fieldtally agent v1" {
		t.Errorf("Unexpected root body: %q", w.Body.String())
	}
}

func TestMethodRouting(t *testing.T) {
	mux := setupRouter(t)

	// Wrong method on a registered pattern
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/stations", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/candidates", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}
