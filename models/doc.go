// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request/response, and external-schema types
for the fieldtally agent.

# Domain Types

The two draft variants share a numeric core:

  - ResultCore: entries, auxiliary counts, cached totals, lifecycle flags
  - StationResultDraft: Form 34A, one per polling station
  - ConstituencyResultDraft: Form 34B, one per constituency
  - ResultDraft: the interface both variants implement

Storage keys are form-scoped:

	StationKey("0421")      → "34a:0421"
	ConstituencyKey("117")  → "34b:117"

# Lifecycle States

	StateFresh     = "fresh"      (created, never edited)
	StateDrafted   = "drafted"    (locally edited, not submitted)
	StateSubmitted = "submitted"  (remote acknowledgment received; terminal)

# Validation Codes

One code per rule, in rule order:

	ValidationInvalidVoteCount
	ValidationInvalidCandidateReference
	ValidationDuplicateCandidate
	ValidationInvalidAuxiliaryCount
	ValidationTurnoutExceedsRegistration

# External Schemas

OCRResponse and OCREntry mirror the OCR service's loose JSON output; scalar
fields are pointers so "absent" stays distinguishable from "zero".
SubmissionPayload and SubmissionAck are the submission endpoint's contract,
used for both draft saves and final submissions.
*/
package models
