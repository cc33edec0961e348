// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"regexp"
	"strings"
)

var (
	reParens     = regexp.MustCompile(`\([^)]*\)`)
	reHonorific  = regexp.MustCompile(`\b(hon|dr|prof|mr|mrs|ms)\.?(\s|$)`)
	reNonAlnum   = regexp.MustCompile(`[^a-z0-9 ]`)
	reMultiSpace = regexp.MustCompile(`\s+`)
)

// Name canonicalizes a free-text candidate name for matching. Two names
// refer to the same candidate iff their normalized forms are byte-equal.
// Deliberately no fuzzy matching: a clean non-match that a human reviews is
// safer on a legally sensitive form than a silent approximate match.
func Name(raw string) string {
	s := strings.ToLower(raw)
	s = reParens.ReplaceAllString(s, " ")
	s = strings.NewReplacer(":", " ", ";", " ", ",", " ").Replace(s)
	s = reHonorific.ReplaceAllString(s, " ")
	s = reNonAlnum.ReplaceAllString(s, "")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
