// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/fieldtally/auth"
	"github.com/danielhkuo/fieldtally/engine"
	"github.com/danielhkuo/fieldtally/middleware"
	"github.com/danielhkuo/fieldtally/models"
	"github.com/danielhkuo/fieldtally/tally"
)

// CreateConstituency handles POST /api/constituencies
func (h *DraftHandler) CreateConstituency(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConstituencyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ConstituencyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "constituency_id is required")
		return
	}
	if msg := checkCandidates(req.Candidates); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	key := models.ConstituencyKey(req.ConstituencyID)

	if _, exists, err := h.store.LoadConstituency(req.ConstituencyID); err != nil {
		slog.Error("failed to check for existing draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	} else if exists {
		middleware.JSONResponse(w, http.StatusOK, models.CreateDraftResponse{
			Key:      key,
			AgentKey: auth.GenerateAgentKey(key, h.cfg.AgentKeySalt),
			Created:  false,
		})
		return
	}

	draft := tally.NewConstituencyDraft(req, req.Candidates, time.Now())
	if err := h.store.SaveDraft(draft); err != nil {
		slog.Error("failed to persist new draft", "error", err, "key", key)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draft")
		return
	}

	slog.Info("constituency draft created", "key", key, "candidates", len(req.Candidates))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateDraftResponse{
		Key:      key,
		AgentKey: auth.GenerateAgentKey(key, h.cfg.AgentKeySalt),
		Created:  true,
	})
}

// GetConstituency handles GET /api/constituencies/{id}
func (h *DraftHandler) GetConstituency(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadConstituency(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ConstituencyDraftResponse{
		State: draft.State(),
		Busy:  h.eng.Busy(draft.StorageKey()),
		Draft: draft,
	})
}

// SetConstituencyVote handles PUT /api/constituencies/{id}/votes
func (h *DraftHandler) SetConstituencyVote(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadConstituency(w, r)
	if !ok {
		return
	}
	if !h.mutable(w, draft) {
		return
	}

	var req models.SetVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := tally.SetVote(draft, req.Index, req.Value, time.Now()); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.persistConstituency(w, draft)
}

// SetConstituencyCounts handles PUT /api/constituencies/{id}/counts
func (h *DraftHandler) SetConstituencyCounts(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadConstituency(w, r)
	if !ok {
		return
	}
	if !h.mutable(w, draft) {
		return
	}

	var req models.SetCountsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tally.ApplyCounts(draft, req, time.Now())
	h.persistConstituency(w, draft)
}

// SetConstituencyDetails handles PUT /api/constituencies/{id}/details
func (h *DraftHandler) SetConstituencyDetails(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadConstituency(w, r)
	if !ok {
		return
	}
	if !h.mutable(w, draft) {
		return
	}

	var req models.ConstituencyDetailsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tally.ApplyConstituencyDetails(draft, req, time.Now())
	h.persistConstituency(w, draft)
}

// SaveConstituency handles POST /api/constituencies/{id}/save
func (h *DraftHandler) SaveConstituency(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadConstituency(w, r)
	if !ok {
		return
	}

	ack, err := h.eng.Save(r.Context(), draft, true)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	resp := models.SaveResponse{State: draft.State()}
	if ack != nil {
		resp.Pushed = true
		resp.BackendRef = ack.Ref
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SubmitConstituency handles POST /api/constituencies/{id}/submit
func (h *DraftHandler) SubmitConstituency(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadConstituency(w, r)
	if !ok {
		return
	}

	if _, err := h.eng.Submit(r.Context(), draft); err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponse{
		State:      draft.State(),
		BackendRef: draft.BackendRef,
	})
}

// DeleteConstituency handles DELETE /api/constituencies/{id}
func (h *DraftHandler) DeleteConstituency(w http.ResponseWriter, r *http.Request) {
	constituencyID := r.PathValue("id")
	if constituencyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	key := models.ConstituencyKey(constituencyID)
	if err := auth.ValidateAgentKey(key, r.Header.Get("X-Agent-Key"), h.cfg.AgentKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid agent key")
		return
	}
	if h.eng.Busy(key) {
		middleware.ErrorResponse(w, http.StatusConflict, engine.ErrBusy.Error())
		return
	}

	if err := h.store.Clear(key); err != nil {
		slog.Error("failed to clear draft", "error", err, "key", key)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear draft")
		return
	}

	slog.Info("constituency draft cleared", "key", key)
	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) loadConstituency(w http.ResponseWriter, r *http.Request) (*models.ConstituencyResultDraft, bool) {
	constituencyID := r.PathValue("id")
	if constituencyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return nil, false
	}

	draft, exists, err := h.store.LoadConstituency(constituencyID)
	if err != nil {
		slog.Error("failed to load draft", "error", err, "constituency_id", constituencyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
		return nil, false
	}
	return draft, true
}

func (h *DraftHandler) persistConstituency(w http.ResponseWriter, draft *models.ConstituencyResultDraft) {
	if err := h.store.SaveDraft(draft); err != nil {
		slog.Error("failed to persist draft", "error", err, "key", draft.StorageKey())
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to persist draft")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ConstituencyDraftResponse{
		State: draft.State(),
		Busy:  false,
		Draft: draft,
	})
}
