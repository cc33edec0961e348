// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danielhkuo/fieldtally/engine"
	"github.com/danielhkuo/fieldtally/middleware"
	"github.com/danielhkuo/fieldtally/models"
)

// mutable rejects edits on a draft that is busy with an in-flight OCR merge
// or submission, or that has already been submitted.
func (h *DraftHandler) mutable(w http.ResponseWriter, d models.ResultDraft) bool {
	if h.eng.Busy(d.StorageKey()) {
		middleware.ErrorResponse(w, http.StatusConflict, engine.ErrBusy.Error())
		return false
	}
	if d.Core().Submitted {
		middleware.ErrorResponse(w, http.StatusConflict, engine.ErrAlreadySubmitted.Error())
		return false
	}
	return true
}

// writeEngineError maps engine failures onto HTTP statuses. Validation
// failures carry their rule code so the operator sees which invariant broke;
// remote failures are retryable and come back as 502.
func writeEngineError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.JSONResponse(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   verr.Code,
			Message: verr.Message,
		})
	case errors.Is(err, engine.ErrAlreadySubmitted):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrBusy):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrUnsupportedImage):
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, err.Error())
	default:
		middleware.ErrorResponse(w, http.StatusBadGateway, err.Error())
	}
}

// checkCandidates enforces the canonical-list invariant at draft creation:
// non-empty, positive unique ids, non-empty names. Returns "" when fine.
func checkCandidates(candidates []models.Candidate) string {
	if len(candidates) == 0 {
		return "candidates are required"
	}
	seen := make(map[int64]bool, len(candidates))
	for i, c := range candidates {
		if c.ID <= 0 {
			return "candidate " + strconv.Itoa(i) + " has an invalid id"
		}
		if c.Name == "" {
			return "candidate " + strconv.Itoa(i) + " has an empty name"
		}
		if seen[c.ID] {
			return "candidate id " + strconv.FormatInt(c.ID, 10) + " is duplicated"
		}
		seen[c.ID] = true
	}
	return ""
}
