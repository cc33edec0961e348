// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists result drafts, the submission guard, and the device
identity in the local database.

# Drafts

One JSON document per storage key ("34a:<station>" or "34b:<constituency>").
Reads are defensive: the schema is additive-only, so unknown fields are
ignored, missing fields zero-fill, and an unreadable payload is treated as
"no draft" (logged) rather than an error - losing one unsaved edit is
cheaper than blocking the capture workflow.

# Submission Guard

AlreadySubmitted and MarkSubmitted manage the per-key at-most-once flag.
MarkSubmitted writes guard-then-draft inside one transaction so a crash can
never leave a submitted draft without its guard. Clear never touches the
guard: a cleared or corrupted draft must not re-enable a duplicate
submission.

# Device Identity

EnsureDeviceID returns a stable UUID, generated and persisted on first boot,
attached to every submission payload.
*/
package store
