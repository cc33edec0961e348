// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the fieldtally agent.

# Handler Types

  - DraftHandler: draft lifecycle for both form variants
  - CandidateHandler: canonical candidate list proxy

Handlers are created via constructor functions:

	draftHandler := handlers.NewDraftHandler(st, eng, cfg)

# Draft Lifecycle

Drafts progress through three states: fresh → drafted → submitted

	POST /api/stations              → CreateStation (returns agent_key)
	PUT  /api/stations/{id}/votes   → SetStationVote (one coerced edit)
	PUT  /api/stations/{id}/counts  → SetStationCounts (rejected/disputed/spoilt)
	PUT  /api/stations/{id}/details → SetStationDetails (narrative fields)
	POST /api/stations/{id}/save    → SaveStation (local + best-effort push)
	POST /api/stations/{id}/ocr     → OCRStation (multipart image → merge)
	POST /api/stations/{id}/submit  → SubmitStation (at most once per device)

The /api/constituencies routes mirror these for Form 34B.

# Concurrency

A draft with an in-flight OCR merge or submission is busy: every other
mutating route answers 409 until the suspended call returns. Submitted
drafts refuse all mutation.

# Error Mapping

Validation failures answer 422 with the failing rule's code. Guard and busy
refusals answer 409. Unsupported uploads answer 415. Remote collaborator
failures answer 502 and are retryable; the draft is left untouched.

Destructive operations require the X-Agent-Key header issued at creation.
*/
package handlers
