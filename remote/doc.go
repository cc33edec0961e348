// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package remote implements HTTP clients for the agent's three collaborators.

  - OCRClient: multipart image upload → raw recognition read
  - SubmitClient: draft/final result payloads → backend acknowledgment
  - CandidateClient: canonical ordered candidate list

All calls take a context and time out on their own budgets (recognition is
slow, submission fails fast). Responses are decoded into strict internal
types; loose or error-status bodies surface as errors carrying the remote
message, and callers must leave their draft untouched on any error.
*/
package remote
