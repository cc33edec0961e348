// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// OCR service statuses
const (
	OCRStatusOK    = "ok"
	OCRStatusError = "error"
)

// Submission statuses accepted by the remote endpoint
const (
	SubmissionStatusDraft     = "draft"
	SubmissionStatusSubmitted = "submitted"
)

// OCREntry is one raw candidate-name/vote pair as read off the photographed
// form. The name is free text and must go through normalize before matching.
type OCREntry struct {
	CandidateName string  `json:"candidate_name"`
	Votes         float64 `json:"votes"`
}

// OCRResponse is the OCR service's output contract. Scalar counts are
// pointers: the service omits or nulls fields it could not read, and the
// reconciler treats "absent" differently from "zero".
type OCRResponse struct {
	Status           string     `json:"status"`
	Message          string     `json:"message,omitempty"`
	Entries          []OCREntry `json:"entries"`
	RejectedVotes    *float64   `json:"rejected_votes"`
	TotalValid       *float64   `json:"total_valid"`
	TotalVotes       *float64   `json:"total_votes"`
	RegisteredVoters *float64   `json:"registered_voters"`
	PresidingOfficer string     `json:"presiding_officer"`
	ReturningOfficer string     `json:"returning_officer"`
	FormSerial       string     `json:"form_serial"`
	Notes            string     `json:"notes"`
}

// SubmissionPayload is the body posted to the remote submission endpoint for
// both draft saves and final submissions.
type SubmissionPayload struct {
	EntityID         string        `json:"entity_id"`
	Form             string        `json:"form"`
	DeviceID         string        `json:"device_id"`
	Entries          []ResultEntry `json:"entries"`
	RejectedVotes    int           `json:"rejected_votes"`
	DisputedVotes    int           `json:"disputed_votes,omitempty"`
	SpoiltVotes      int           `json:"spoilt_votes,omitempty"`
	RegisteredVoters int           `json:"registered_voters"`
	TotalValid       int           `json:"total_valid"`
	TotalVotes       int           `json:"total_votes"`
	Officer          string        `json:"officer,omitempty"`
	FormRef          string        `json:"form_ref,omitempty"`
	Remarks          string        `json:"remarks,omitempty"`
	Status           string        `json:"status"`
}

// SubmissionAck is the remote endpoint's reply. Ref is the backend
// correlation id kept on the draft after a successful round trip.
type SubmissionAck struct {
	Status  string `json:"status"`
	Ref     string `json:"ref"`
	Message string `json:"message,omitempty"`
}
