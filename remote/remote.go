// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/fieldtally/models"
)

// OCR recognition can take a while on a busy backend; submissions should
// fail fast enough for the operator to retry.
const (
	ocrTimeout    = 90 * time.Second
	submitTimeout = 30 * time.Second
	listTimeout   = 15 * time.Second
)

// OCRClient calls the external OCR recognition service.
type OCRClient struct {
	base string
	hc   *http.Client
}

func NewOCRClient(base string) *OCRClient {
	return &OCRClient{base: base, hc: &http.Client{Timeout: ocrTimeout}}
}

// Recognize uploads a form photo and returns the service's raw read.
// Any transport or service failure is returned as an error; the caller must
// leave the draft untouched in that case.
func (c *OCRClient) Recognize(ctx context.Context, form, entityID, filename, mimeType string, image []byte) (*models.OCRResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("form", form); err != nil {
		return nil, fmt.Errorf("failed to build OCR request: %w", err)
	}
	if err := mw.WriteField("entity_id", entityID); err != nil {
		return nil, fmt.Errorf("failed to build OCR request: %w", err)
	}

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	hdr.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("failed to build OCR request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build OCR request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR service returned %s: %s", resp.Status, readSnippet(resp.Body))
	}

	var out models.OCRResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("unparseable OCR response: %w", err)
	}
	if out.Status == models.OCRStatusError {
		msg := out.Message
		if msg == "" {
			msg = "recognition failed"
		}
		return nil, fmt.Errorf("OCR service error: %s", msg)
	}
	return &out, nil
}

// SubmitClient posts result payloads to the remote submission endpoint.
type SubmitClient struct {
	base string
	hc   *http.Client
}

func NewSubmitClient(base string) *SubmitClient {
	return &SubmitClient{base: base, hc: &http.Client{Timeout: submitTimeout}}
}

// Submit sends the payload and returns the backend acknowledgment. A remote
// rejection (for example "locked" when the record is no longer editable)
// comes back as an error carrying the backend's message.
func (c *SubmitClient) Submit(ctx context.Context, payload models.SubmissionPayload) (*models.SubmissionAck, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submission endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	var ack models.SubmissionAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("unparseable submission acknowledgment: %w", err)
		}
		return nil, fmt.Errorf("submission rejected with %s", resp.Status)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || strings.EqualFold(ack.Status, "error") {
		msg := ack.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("submission rejected: %s", msg)
	}
	return &ack, nil
}

// CandidateClient fetches the canonical ordered candidate list.
type CandidateClient struct {
	base string
	hc   *http.Client
}

func NewCandidateClient(base string) *CandidateClient {
	return &CandidateClient{base: base, hc: &http.Client{Timeout: listTimeout}}
}

// List returns candidates in the source's order. Order matters: draft
// entries are index-aligned to it.
func (c *CandidateClient) List(ctx context.Context, scope string) ([]models.Candidate, error) {
	u := c.base
	if scope != "" {
		u += "?scope=" + url.QueryEscape(scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("candidate source unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("candidate source returned %s: %s", resp.Status, readSnippet(resp.Body))
	}

	var out []models.Candidate
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("unparseable candidate list: %w", err)
	}
	return out, nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
