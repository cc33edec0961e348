// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/fieldtally/auth"
	"github.com/danielhkuo/fieldtally/cliparse"
	"github.com/danielhkuo/fieldtally/engine"
	"github.com/danielhkuo/fieldtally/middleware"
	"github.com/danielhkuo/fieldtally/models"
	"github.com/danielhkuo/fieldtally/store"
	"github.com/danielhkuo/fieldtally/tally"
)

type DraftHandler struct {
	store *store.Store
	eng   *engine.Engine
	cfg   cliparse.Config
}

func NewDraftHandler(st *store.Store, eng *engine.Engine, cfg cliparse.Config) *DraftHandler {
	return &DraftHandler{store: st, eng: eng, cfg: cfg}
}

// CreateStation handles POST /api/stations
// Creating is idempotent per station: an existing draft is returned as-is.
func (h *DraftHandler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "station_id is required")
		return
	}
	if msg := checkCandidates(req.Candidates); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	key := models.StationKey(req.StationID)

	if _, exists, err := h.store.LoadStation(req.StationID); err != nil {
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

	draft := tally.NewStationDraft(req, req.Candidates, time.Now())
	if err := h.store.SaveDraft(draft); err != nil {
		slog.Error("failed to persist new draft", "error", err, "key", key)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draft")
		return
	}

	slog.Info("station draft created", "key", key, "candidates", len(req.Candidates))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateDraftResponse{
		Key:      key,
		AgentKey: auth.GenerateAgentKey(key, h.cfg.AgentKeySalt),
		Created:  true,
	})
}

// GetStation handles GET /api/stations/{id}
func (h *DraftHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadStation(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.StationDraftResponse{
		State: draft.State(),
		Busy:  h.eng.Busy(draft.StorageKey()),
		Draft: draft,
	})
}

// SetStationVote handles PUT /api/stations/{id}/votes
func (h *DraftHandler) SetStationVote(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadStation(w, r)
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

	h.persistStation(w, draft)
}

// SetStationCounts handles PUT /api/stations/{id}/counts
func (h *DraftHandler) SetStationCounts(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadStation(w, r)
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
	h.persistStation(w, draft)
}

// SetStationDetails handles PUT /api/stations/{id}/details
func (h *DraftHandler) SetStationDetails(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadStation(w, r)
	if !ok {
		return
	}
	if !h.mutable(w, draft) {
		return
	}

	var req models.StationDetailsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tally.ApplyStationDetails(draft, req, time.Now())
	h.persistStation(w, draft)
}

// SaveStation handles POST /api/stations/{id}/save
func (h *DraftHandler) SaveStation(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadStation(w, r)
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

// SubmitStation handles POST /api/stations/{id}/submit
func (h *DraftHandler) SubmitStation(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadStation(w, r)
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

// DeleteStation handles DELETE /api/stations/{id}
// Requires the X-Agent-Key issued at creation. Clearing a draft never
// clears its submission guard.
func (h *DraftHandler) DeleteStation(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	if stationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	key := models.StationKey(stationID)
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

	slog.Info("station draft cleared", "key", key)
	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) loadStation(w http.ResponseWriter, r *http.Request) (*models.StationResultDraft, bool) {
	stationID := r.PathValue("id")
	if stationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return nil, false
	}

	draft, exists, err := h.store.LoadStation(stationID)
	if err != nil {
		slog.Error("failed to load draft", "error", err, "station_id", stationID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
		return nil, false
	}
	return draft, true
}

func (h *DraftHandler) persistStation(w http.ResponseWriter, draft *models.StationResultDraft) {
	if err := h.store.SaveDraft(draft); err != nil {
		slog.Error("failed to persist draft", "error", err, "key", draft.StorageKey())
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to persist draft")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.StationDraftResponse{
		State: draft.State(),
		Busy:  false,
		Draft: draft,
	})
}
