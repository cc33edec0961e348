// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally holds the pure arithmetic of a results draft: construction,
input coercion, totals, and validation.

# Coercion

All operator-entered numbers pass through one clamp rule:

	CoerceCount("120")  → 120
	CoerceCount("12.9") → 12
	CoerceCount("-7")   → 0
	CoerceCount("abc")  → 0

Malformed input is never a hard error; it becomes zero and stays editable.

# Totals

Recompute caches the derived fields after every mutation:

	TotalValid = Σ entries[i].Votes
	TotalVotes = TotalValid + RejectedVotes
	Turnout    = TotalVotes / RegisteredVoters × 100   (0 without registration)

# Validation

Validate runs five ordered rules and reports the first failure:

 1. every entry vote non-negative
 2. every candidate id positive
 3. no duplicate candidate ids
 4. auxiliary counts non-negative
 5. TotalVotes ≤ RegisteredVoters when registration is known

A draft failing any rule must never reach the submission endpoint. Save only
requires coerced numbers; Submit requires a nil ValidationError.
*/
package tally
