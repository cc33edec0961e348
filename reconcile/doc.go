// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile merges an OCR read of a paper results form into a draft.

# Matching

OCR candidate names are free text. Matching against the canonical list uses
normalized byte equality (see package normalize) and nothing looser: on a
legally sensitive form, a clean non-match a human reviews beats a silent
approximate match.

# Merge Semantics

An OCR pass is an authoritative re-read of the form, not a partial patch:

  - every canonical candidate gets exactly one entry, in canonical order
  - candidates the OCR engine missed come back as 0 for manual review
  - duplicate normalized names within the OCR payload: last write wins
  - rejected votes: OCR value if present and non-null, else kept
  - scalar totals: positive OCR values win, else recomputed locally
  - officer / form reference: never overwrite a populated field with ""
  - notes append to remarks with a separator; every pass stays on record

Merging twice with the same response yields the same ledger (idempotent, not
additive). The merged draft is never auto-submitted.

# Upload Gate

AllowedImage accepts JPEG, PNG, and WEBP, by MIME type or file extension,
either alone sufficing. The gate runs before any network call.
*/
package reconcile
