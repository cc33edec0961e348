// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Validation failure codes, one per rule, in the order the rules run.
const (
	ValidationInvalidVoteCount           = "invalid_vote_count"
	ValidationInvalidCandidateReference  = "invalid_candidate_reference"
	ValidationDuplicateCandidate         = "duplicate_candidate"
	ValidationInvalidAuxiliaryCount      = "invalid_auxiliary_count"
	ValidationTurnoutExceedsRegistration = "turnout_exceeds_registration"
)

// ValidationError names the first validation rule a draft failed. A draft
// with a non-nil ValidationError must never reach the submission endpoint.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}
