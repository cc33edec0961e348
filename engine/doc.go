// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine orchestrates the draft state machine.

# States

	fresh     → created with all-zero entries, never edited
	drafted   → locally edited or saved, not yet submitted
	submitted → remote acknowledgment received; terminal on this device

# Transitions

Save (fresh/drafted → drafted) requires only coerced numbers. It always
persists locally; the backend push for a correlation ref is best-effort and
its failure never undoes the local save.

Submit (drafted → submitted) runs, in order: the local submission guard
check (set guard → ErrAlreadySubmitted with no network call), full
validation, the remote round trip, then the guard-then-draft finalize in one
transaction. A failed or rejected submission leaves the draft drafted and
the guard unset, eligible for retry.

MergeOCR gates the upload type, calls the recognition service, and merges
the read (see package reconcile). Failure anywhere before the merge leaves
the stored draft byte-identical.

# Serialization

Each draft key carries a busy flag for the duration of a suspended OCR or
submit call; every other mutating operation on that key is refused with
ErrBusy until the call returns. In-flight calls are not cancellable: a
timeout simply leaves the draft in its pre-call state.
*/
package engine
