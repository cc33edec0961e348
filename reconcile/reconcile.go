// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"time"

	"github.com/danielhkuo/fieldtally/models"
	"github.com/danielhkuo/fieldtally/normalize"
	"github.com/danielhkuo/fieldtally/tally"
)

// NoteSeparator joins successive OCR notes onto the remarks field so every
// OCR pass stays visible in the audit trail.
const NoteSeparator = "\n---\n"

// Merge folds an OCR read of the paper form into the draft. An OCR pass is
// an authoritative re-read, not a partial patch: candidates the engine
// failed to detect come back as zero and must be reviewed by the operator,
// rather than silently keeping stale numbers. The result is never
// auto-submitted.
func Merge(d models.ResultDraft, resp *models.OCRResponse, candidates []models.Candidate, now time.Time) {
	c := d.Core()

	// Last write wins when the OCR payload itself repeats a normalized name.
	byName := make(map[string]float64, len(resp.Entries))
	for _, e := range resp.Entries {
		byName[normalize.Name(e.CandidateName)] = e.Votes
	}

	entries := make([]models.ResultEntry, len(candidates))
	for i, cand := range candidates {
		votes := 0
		if v, ok := byName[normalize.Name(cand.Name)]; ok {
			votes = tally.ClampCount(v)
		}
		entries[i] = models.ResultEntry{CandidateID: cand.ID, Votes: votes}
	}
	c.Entries = entries

	if resp.RejectedVotes != nil {
		c.RejectedVotes = tally.ClampCount(*resp.RejectedVotes)
	}

	// Recompute from the merged ledger, then let positive OCR scalars win.
	tally.Recompute(c)
	if resp.TotalValid != nil && *resp.TotalValid > 0 {
		c.TotalValid = tally.ClampCount(*resp.TotalValid)
	}
	if resp.TotalVotes != nil && *resp.TotalVotes > 0 {
		c.TotalVotes = tally.ClampCount(*resp.TotalVotes)
	}
	if resp.RegisteredVoters != nil && *resp.RegisteredVoters > 0 {
		c.RegisteredVoters = tally.ClampCount(*resp.RegisteredVoters)
	}
	// The overrides bypass the ledger, so the cached turnout must be
	// refreshed from the final totals.
	tally.RecomputeTurnout(c)

	switch v := d.(type) {
	case *models.StationResultDraft:
		mergeText(&v.PresidingOfficer, resp.PresidingOfficer)
		mergeText(&v.Form34ARef, resp.FormSerial)
	case *models.ConstituencyResultDraft:
		mergeText(&v.ReturningOfficer, resp.ReturningOfficer)
		mergeText(&v.Form34BRef, resp.FormSerial)
	}

	if resp.Notes != "" {
		if c.Remarks == "" {
			c.Remarks = resp.Notes
		} else {
			c.Remarks = c.Remarks + NoteSeparator + resp.Notes
		}
	}

	c.UpdatedAt = now
}

// mergeText takes the OCR value only when it is non-empty: a populated field
// is never overwritten with emptiness.
func mergeText(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
