// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/fieldtally/cliparse"
	"github.com/danielhkuo/fieldtally/engine"
	"github.com/danielhkuo/fieldtally/handlers"
	"github.com/danielhkuo/fieldtally/middleware"
	"github.com/danielhkuo/fieldtally/store"
)

func NewRouter(st *store.Store, eng *engine.Engine, source handlers.CandidateLister, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	draftHandler := handlers.NewDraftHandler(st, eng, cfg)
	candidateHandler := handlers.NewCandidateHandler(source)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Candidate source proxy
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(candidateHandler.List))

	// Form 34A drafts (per polling station)
	mux.HandleFunc("POST /api/stations", middleware.WithLogging(draftHandler.CreateStation))
	mux.HandleFunc("GET /api/stations/{id}", middleware.WithLogging(draftHandler.GetStation))
	mux.HandleFunc("PUT /api/stations/{id}/votes", middleware.WithLogging(draftHandler.SetStationVote))
	mux.HandleFunc("PUT /api/stations/{id}/counts", middleware.WithLogging(draftHandler.SetStationCounts))
	mux.HandleFunc("PUT /api/stations/{id}/details", middleware.WithLogging(draftHandler.SetStationDetails))
	mux.HandleFunc("POST /api/stations/{id}/save", middleware.WithLogging(draftHandler.SaveStation))
	mux.HandleFunc("POST /api/stations/{id}/ocr", middleware.WithLogging(draftHandler.OCRStation))
	mux.HandleFunc("POST /api/stations/{id}/submit", middleware.WithLogging(draftHandler.SubmitStation))
	mux.HandleFunc("DELETE /api/stations/{id}", middleware.WithLogging(draftHandler.DeleteStation))

	// Form 34B drafts (per constituency)
	mux.HandleFunc("POST /api/constituencies", middleware.WithLogging(draftHandler.CreateConstituency))
	mux.HandleFunc("GET /api/constituencies/{id}", middleware.WithLogging(draftHandler.GetConstituency))
	mux.HandleFunc("PUT /api/constituencies/{id}/votes", middleware.WithLogging(draftHandler.SetConstituencyVote))
	mux.HandleFunc("PUT /api/constituencies/{id}/counts", middleware.WithLogging(draftHandler.SetConstituencyCounts))
	mux.HandleFunc("PUT /api/constituencies/{id}/details", middleware.WithLogging(draftHandler.SetConstituencyDetails))
	mux.HandleFunc("POST /api/constituencies/{id}/save", middleware.WithLogging(draftHandler.SaveConstituency))
	mux.HandleFunc("POST /api/constituencies/{id}/ocr", middleware.WithLogging(draftHandler.OCRConstituency))
	mux.HandleFunc("POST /api/constituencies/{id}/submit", middleware.WithLogging(draftHandler.SubmitConstituency))
	mux.HandleFunc("DELETE /api/constituencies/{id}", middleware.WithLogging(draftHandler.DeleteConstituency))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fieldtally agent v1"))
	})

	return mux
}
