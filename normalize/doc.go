// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package normalize canonicalizes free-text candidate names for matching.

	normalize.Name("Hon. Jane DOE (ABC Party)") == "jane doe"

Lower-case, strip parenthesized party annotations, strip honorific tokens
(hon, dr, prof, mr, mrs, ms, optional trailing period), drop punctuation,
keep only lowercase letters, digits, and single spaces, trim. Deterministic
and total. Byte equality of normalized forms is the only match criterion;
there is intentionally no edit-distance fallback.
*/
package normalize
