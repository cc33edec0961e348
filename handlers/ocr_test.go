// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/danielhkuo/fieldtally/models"
	"github.com/danielhkuo/fieldtally/testutil"
)

// makeImageUpload builds a multipart request with one "image" part carrying
// an explicit Content-Type, the way phone clients send camera captures.
func makeImageUpload(t *testing.T, path, filename, mimeType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	hdr.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("Failed to create multipart part: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestOCRStation(t *testing.T) {
	mux, st, ocr, _ := setupServer(t)
	testutil.CreateTestStation(t, st, "0421", 1000)
	ocr.Response = &models.OCRResponse{
		Status: models.OCRStatusOK,
		Entries: []models.OCREntry{
			{CandidateName: "Hon. Jane DOE (ABC Party)", Votes: 120},
			{CandidateName: "JOHN ROE", Votes: 80},
		},
		RejectedVotes: testutil.Float(5),
		Notes:         "stamp partially legible",
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, makeImageUpload(t, "/api/stations/0421/ocr", "form.jpg", "image/jpeg", []byte("fake-jpeg")))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StationDraftResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Draft.Entries[0].Votes != 120 || resp.Draft.Entries[1].Votes != 80 {
		t.Errorf("Unexpected merged entries: %+v", resp.Draft.Entries)
	}
	if resp.Draft.TotalVotes != 205 {
		t.Errorf("Expected total_votes 205, got %d", resp.Draft.TotalVotes)
	}
	if resp.Draft.Remarks != "stamp partially legible" {
		t.Errorf("Expected OCR notes on remarks, got %q", resp.Draft.Remarks)
	}
	if resp.State != models.StateDrafted {
		t.Errorf("OCR merge must leave the draft drafted, got %s", resp.State)
	}
	if ocr.Calls != 1 {
		t.Errorf("Expected one OCR call, got %d", ocr.Calls)
	}
}

func TestOCRStationUnsupportedType(t *testing.T) {
	mux, st, ocr, _ := setupServer(t)
	testutil.CreateTestStation(t, st, "0421", 1000)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, makeImageUpload(t, "/api/stations/0421/ocr", "form.pdf", "application/pdf", []byte("fake-pdf")))
	testutil.AssertStatus(t, w, http.StatusUnsupportedMediaType)
	if ocr.Calls != 0 {
		t.Errorf("Rejected upload reached the OCR service: %d calls", ocr.Calls)
	}
}

func TestOCRStationMissingImage(t *testing.T) {
	mux, st, _, _ := setupServer(t)
	testutil.CreateTestStation(t, st, "0421", 1000)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/stations/0421/ocr", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestOCRStationAfterSubmit(t *testing.T) {
	mux, st, ocr, _ := setupServer(t)
	d := testutil.CreateTestStation(t, st, "0421", 1000)
	seedVotes(t, st, d)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/stations/0421/submit", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, makeImageUpload(t, "/api/stations/0421/ocr", "form.jpg", "image/jpeg", []byte("fake-jpeg")))
	testutil.AssertStatus(t, w, http.StatusConflict)
	if ocr.Calls != 0 {
		t.Errorf("Submitted draft reached the OCR service: %d calls", ocr.Calls)
	}
}

func TestOCRConstituency(t *testing.T) {
	mux, st, ocr, _ := setupServer(t)
	testutil.CreateTestConstituency(t, st, "117", 0)
	ocr.Response = &models.OCRResponse{
		Status: models.OCRStatusOK,
		Entries: []models.OCREntry{
			{CandidateName: "Jane Doe", Votes: 4100},
			{CandidateName: "John Roe", Votes: 3900},
		},
		ReturningOfficer: "R. Officer",
		FormSerial:       "B-117",
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, makeImageUpload(t, "/api/constituencies/117/ocr", "form.png", "image/png", []byte("fake-png")))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ConstituencyDraftResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Draft.TotalValid != 8000 {
		t.Errorf("Expected total_valid 8000, got %d", resp.Draft.TotalValid)
	}
	if resp.Draft.ReturningOfficer != "R. Officer" || resp.Draft.Form34BRef != "B-117" {
		t.Errorf("Expected narrative pickup, got %q / %q", resp.Draft.ReturningOfficer, resp.Draft.Form34BRef)
	}
}
