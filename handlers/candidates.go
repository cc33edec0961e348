// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fieldtally/middleware"
	"github.com/danielhkuo/fieldtally/models"
)

// CandidateLister is the candidate source collaborator.
type CandidateLister interface {
	List(ctx context.Context, scope string) ([]models.Candidate, error)
}

type CandidateHandler struct {
	source CandidateLister
}

func NewCandidateHandler(source CandidateLister) *CandidateHandler {
	return &CandidateHandler{source: source}
}

// List handles GET /api/candidates
// Proxies the canonical ordered list so draft creation and the capture UI
// work from one source. Order is preserved; entries are index-aligned to it.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "candidate source not configured")
		return
	}

	candidates, err := h.source.List(r.Context(), r.URL.Query().Get("scope"))
	if err != nil {
		slog.Error("candidate source failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}
