// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/fieldtally/models"
	"github.com/danielhkuo/fieldtally/reconcile"
	"github.com/danielhkuo/fieldtally/store"
	"github.com/danielhkuo/fieldtally/tally"
)

var (
	// ErrAlreadySubmitted means the local guard is set for this draft key.
	// It is raised before any network traffic.
	ErrAlreadySubmitted = errors.New("already submitted on this device")

	// ErrBusy means an OCR merge or submission is in flight for the key.
	ErrBusy = errors.New("another operation is in progress for this draft")

	// ErrUnsupportedImage means the upload failed the client-side type gate.
	ErrUnsupportedImage = errors.New("unsupported image type: only JPEG, PNG, and WEBP are accepted")
)

// OCRService is the recognition collaborator: image in, raw read out.
type OCRService interface {
	Recognize(ctx context.Context, form, entityID, filename, mimeType string, image []byte) (*models.OCRResponse, error)
}

// Submitter is the remote submission endpoint.
type Submitter interface {
	Submit(ctx context.Context, payload models.SubmissionPayload) (*models.SubmissionAck, error)
}

// Engine orchestrates draft persistence, OCR reconciliation, and the
// fresh → drafted → submitted state machine with an at-most-once submission
// guarantee per draft key per device.
//
// Mutations on one draft are serialized by a per-key busy flag: while an OCR
// merge or submission is suspended on the network, every other mutating
// operation on the same key is refused with ErrBusy.
type Engine struct {
	store     *store.Store
	ocr       OCRService
	submitter Submitter
	deviceID  string

	mu   sync.Mutex
	busy map[string]bool

	now func() time.Time
}

func New(st *store.Store, ocr OCRService, submitter Submitter, deviceID string) *Engine {
	return &Engine{
		store:     st,
		ocr:       ocr,
		submitter: submitter,
		busy:      make(map[string]bool),
		deviceID:  deviceID,
		now:       time.Now,
	}
}

// Busy reports whether a suspended operation holds the key.
func (e *Engine) Busy(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy[key]
}

func (e *Engine) acquire(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy[key] {
		return ErrBusy
	}
	e.busy[key] = true
	return nil
}

func (e *Engine) release(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.busy, key)
}

// Save persists the draft locally and, when push is set, best-effort posts a
// status:"draft" payload to the backend for a correlation ref. A failed push
// never undoes the local save; the returned ack is nil in that case.
// Save requires only well-formed numbers, not full validation.
func (e *Engine) Save(ctx context.Context, d models.ResultDraft, push bool) (*models.SubmissionAck, error) {
	if err := e.acquire(d.StorageKey()); err != nil {
		return nil, err
	}
	defer e.release(d.StorageKey())

	if d.Core().Submitted {
		return nil, ErrAlreadySubmitted
	}

	if err := e.store.SaveDraft(d); err != nil {
		return nil, err
	}

	if !push {
		return nil, nil
	}

	ack, err := e.submitter.Submit(ctx, tally.Payload(d, e.deviceID, models.SubmissionStatusDraft))
	if err != nil {
		slog.Warn("draft push failed, local save kept", "key", d.StorageKey(), "error", err)
		return nil, nil
	}

	if ack.Ref != "" {
		d.Core().BackendRef = ack.Ref
		if err := e.store.SaveDraft(d); err != nil {
			return nil, err
		}
	}
	return ack, nil
}

// MergeOCR uploads the form image, merges the recognized read into the
// draft, and persists the result. Any failure before the merge leaves the
// stored draft exactly as it was. The merged draft is not auto-submitted.
func (e *Engine) MergeOCR(ctx context.Context, d models.ResultDraft, filename, mimeType string, image []byte) error {
	if err := e.acquire(d.StorageKey()); err != nil {
		return err
	}
	defer e.release(d.StorageKey())

	if d.Core().Submitted {
		return ErrAlreadySubmitted
	}
	if !reconcile.AllowedImage(filename, mimeType) {
		return ErrUnsupportedImage
	}

	resp, err := e.ocr.Recognize(ctx, d.FormKind(), d.EntityID(), filename, mimeType, image)
	if err != nil {
		return err
	}

	reconcile.Merge(d, resp, d.Core().Candidates, e.now())

	if err := e.store.SaveDraft(d); err != nil {
		return err
	}

	slog.Info("OCR merge applied",
		"key", d.StorageKey(),
		"entries", len(resp.Entries),
		"total_valid", d.Core().TotalValid,
	)
	return nil
}

// Submit runs the drafted → submitted transition: local guard check first
// (a set guard refuses without any network call), then full validation, then
// the remote round trip. Only a confirmed acknowledgment sets the guard and
// the submitted flag, atomically from the caller's point of view. On any
// failure the draft stays drafted and eligible for retry.
func (e *Engine) Submit(ctx context.Context, d models.ResultDraft) (*models.SubmissionAck, error) {
	key := d.StorageKey()
	if err := e.acquire(key); err != nil {
		return nil, err
	}
	defer e.release(key)

	if d.Core().Submitted {
		return nil, ErrAlreadySubmitted
	}
	guarded, err := e.store.AlreadySubmitted(key)
	if err != nil {
		return nil, err
	}
	if guarded {
		return nil, ErrAlreadySubmitted
	}

	if verr := tally.Validate(d); verr != nil {
		return nil, verr
	}

	ack, err := e.submitter.Submit(ctx, tally.Payload(d, e.deviceID, models.SubmissionStatusSubmitted))
	if err != nil {
		return nil, fmt.Errorf("submission failed: %w", err)
	}

	now := e.now()
	c := d.Core()
	c.Submitted = true
	c.UpdatedAt = now
	if ack.Ref != "" {
		c.BackendRef = ack.Ref
	}

	if err := e.store.MarkSubmitted(d, now); err != nil {
		// The backend accepted the submission but the local finalize
		// failed. Surface it loudly: the guard is the duplicate defence.
		slog.Error("failed to finalize submitted draft", "key", key, "error", err)
		return nil, err
	}

	slog.Info("results submitted", "key", key, "backend_ref", c.BackendRef)
	return ack, nil
}
