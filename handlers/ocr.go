// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/fieldtally/middleware"
	"github.com/danielhkuo/fieldtally/models"
)

// maxUploadBytes caps form photos; phone camera JPEGs sit well under this.
const maxUploadBytes = 8 << 20

// OCRStation handles POST /api/stations/{id}/ocr
// Accepts a multipart "image" part, runs it through the OCR service, and
// merges the read into the draft. Any failure leaves the draft untouched.
func (h *DraftHandler) OCRStation(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadStation(w, r)
	if !ok {
		return
	}

	filename, mimeType, image, ok := h.readImage(w, r)
	if !ok {
		return
	}

	if err := h.eng.MergeOCR(r.Context(), draft, filename, mimeType, image); err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StationDraftResponse{
		State: draft.State(),
		Busy:  false,
		Draft: draft,
	})
}

// OCRConstituency handles POST /api/constituencies/{id}/ocr
func (h *DraftHandler) OCRConstituency(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.loadConstituency(w, r)
	if !ok {
		return
	}

	filename, mimeType, image, ok := h.readImage(w, r)
	if !ok {
		return
	}

	if err := h.eng.MergeOCR(r.Context(), draft, filename, mimeType, image); err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ConstituencyDraftResponse{
		State: draft.State(),
		Busy:  false,
		Draft: draft,
	})
}

func (h *DraftHandler) readImage(w http.ResponseWriter, r *http.Request) (filename, mimeType string, image []byte, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"image upload required (max "+humanize.IBytes(maxUploadBytes)+")")
		return "", "", nil, false
	}
	defer file.Close()

	image, err = io.ReadAll(file)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "failed to read upload")
		return "", "", nil, false
	}

	slog.Info("form image received",
		"filename", header.Filename,
		"size", humanize.IBytes(uint64(len(image))),
	)

	return header.Filename, header.Header.Get("Content-Type"), image, true
}
