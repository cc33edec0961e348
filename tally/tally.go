// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/fieldtally/models"
)

var ErrIndexOutOfRange = errors.New("entry index out of range")

// NewStationDraft creates a fresh 34A draft with one zero-vote entry per
// candidate, in the candidate source's order. Entry order is preserved for
// the life of the draft; entry index is the UI's handle on a candidate.
func NewStationDraft(req models.CreateStationRequest, candidates []models.Candidate, now time.Time) *models.StationResultDraft {
	d := &models.StationResultDraft{
		StationID:    req.StationID,
		StationName:  req.StationName,
		Ward:         req.Ward,
		Constituency: req.Constituency,
		County:       req.County,
	}
	initCore(&d.ResultCore, candidates, req.RegisteredVoters, now)
	return d
}

// NewConstituencyDraft creates a fresh 34B draft.
func NewConstituencyDraft(req models.CreateConstituencyRequest, candidates []models.Candidate, now time.Time) *models.ConstituencyResultDraft {
	d := &models.ConstituencyResultDraft{
		ConstituencyID:   req.ConstituencyID,
		ConstituencyName: req.ConstituencyName,
		County:           req.County,
	}
	initCore(&d.ResultCore, candidates, req.RegisteredVoters, now)
	return d
}

func initCore(c *models.ResultCore, candidates []models.Candidate, registered int, now time.Time) {
	c.Candidates = candidates
	c.Entries = make([]models.ResultEntry, len(candidates))
	for i, cand := range candidates {
		c.Entries[i] = models.ResultEntry{CandidateID: cand.ID}
	}
	if registered > 0 {
		c.RegisteredVoters = registered
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	Recompute(c)
}

// CoerceCount turns untrusted numeric text into a non-negative integer:
// parse as a number, floor, clamp to 0. Non-numeric input becomes 0.
func CoerceCount(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := int(math.Floor(f))
	if n < 0 {
		return 0
	}
	return n
}

// ClampCount applies the same floor-and-clamp rule to an already-numeric
// value (OCR output arrives as float64).
func ClampCount(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := int(math.Floor(f))
	if n < 0 {
		return 0
	}
	return n
}

// Recompute refreshes the cached totals from the ledger:
// TotalValid = Σ entry votes, TotalVotes = TotalValid + RejectedVotes,
// Turnout = TotalVotes / RegisteredVoters * 100 (0 if no registration).
// Runs after every mutation so the persisted and displayed numbers agree.
func Recompute(c *models.ResultCore) {
	total := 0
	for _, e := range c.Entries {
		total += e.Votes
	}
	c.TotalValid = total
	c.TotalVotes = total + c.RejectedVotes
	RecomputeTurnout(c)
}

// RecomputeTurnout refreshes only the cached turnout, for callers that set
// TotalVotes or RegisteredVoters directly instead of through the ledger.
func RecomputeTurnout(c *models.ResultCore) {
	if c.RegisteredVoters > 0 {
		c.Turnout = float64(c.TotalVotes) / float64(c.RegisteredVoters) * 100
	} else {
		c.Turnout = 0
	}
}

// SetVote records one vote edit. raw is untrusted operator text.
func SetVote(d models.ResultDraft, index int, raw string, now time.Time) error {
	c := d.Core()
	if index < 0 || index >= len(c.Entries) {
		return ErrIndexOutOfRange
	}
	c.Entries[index].Votes = CoerceCount(raw)
	Recompute(c)
	c.UpdatedAt = now
	return nil
}

// ApplyCounts updates whichever auxiliary counts the request carries.
// Disputed and spoilt only exist on the 34A variant; they are ignored for a
// 34B draft.
func ApplyCounts(d models.ResultDraft, req models.SetCountsRequest, now time.Time) {
	c := d.Core()
	if req.Rejected != nil {
		c.RejectedVotes = CoerceCount(*req.Rejected)
	}
	if req.RegisteredVoters != nil {
		c.RegisteredVoters = CoerceCount(*req.RegisteredVoters)
	}
	if s, ok := d.(*models.StationResultDraft); ok {
		if req.Disputed != nil {
			s.DisputedVotes = CoerceCount(*req.Disputed)
		}
		if req.Spoilt != nil {
			s.SpoiltVotes = CoerceCount(*req.Spoilt)
		}
	}
	Recompute(c)
	c.UpdatedAt = now
}

// Validate checks the draft's internal numeric consistency. First failing
// rule wins; nil means the draft may be transmitted.
func Validate(d models.ResultDraft) *models.ValidationError {
	c := d.Core()

	for i, e := range c.Entries {
		if e.Votes < 0 {
			return &models.ValidationError{
				Code:    models.ValidationInvalidVoteCount,
				Message: "entry " + strconv.Itoa(i) + " has a negative vote count",
			}
		}
	}

	for i, e := range c.Entries {
		if e.CandidateID <= 0 {
			return &models.ValidationError{
				Code:    models.ValidationInvalidCandidateReference,
				Message: "entry " + strconv.Itoa(i) + " references an invalid candidate id",
			}
		}
	}

	seen := make(map[int64]bool, len(c.Entries))
	for _, e := range c.Entries {
		if seen[e.CandidateID] {
			return &models.ValidationError{
				Code:    models.ValidationDuplicateCandidate,
				Message: "candidate " + strconv.FormatInt(e.CandidateID, 10) + " appears more than once",
			}
		}
		seen[e.CandidateID] = true
	}

	aux := []int{c.RejectedVotes}
	if s, ok := d.(*models.StationResultDraft); ok {
		aux = append(aux, s.DisputedVotes, s.SpoiltVotes)
	}
	for _, n := range aux {
		if n < 0 {
			return &models.ValidationError{
				Code:    models.ValidationInvalidAuxiliaryCount,
				Message: "rejected/disputed/spoilt counts must be non-negative",
			}
		}
	}

	if c.RegisteredVoters > 0 && c.TotalVotes > c.RegisteredVoters {
		return &models.ValidationError{
			Code:    models.ValidationTurnoutExceedsRegistration,
			Message: "total votes " + strconv.Itoa(c.TotalVotes) + " exceed registered voters " + strconv.Itoa(c.RegisteredVoters),
		}
	}

	return nil
}

// Payload builds the submission body for a draft in its current state.
func Payload(d models.ResultDraft, deviceID, status string) models.SubmissionPayload {
	c := d.Core()
	p := models.SubmissionPayload{
		EntityID:         d.EntityID(),
		Form:             d.FormKind(),
		DeviceID:         deviceID,
		Entries:          c.Entries,
		RejectedVotes:    c.RejectedVotes,
		RegisteredVoters: c.RegisteredVoters,
		TotalValid:       c.TotalValid,
		TotalVotes:       c.TotalVotes,
		Remarks:          c.Remarks,
		Status:           status,
	}
	switch v := d.(type) {
	case *models.StationResultDraft:
		p.DisputedVotes = v.DisputedVotes
		p.SpoiltVotes = v.SpoiltVotes
		p.Officer = v.PresidingOfficer
		p.FormRef = v.Form34ARef
	case *models.ConstituencyResultDraft:
		p.Officer = v.ReturningOfficer
		p.FormRef = v.Form34BRef
	}
	return p
}

// ApplyStationDetails patches 34A narrative fields; nil means unchanged.
func ApplyStationDetails(d *models.StationResultDraft, req models.StationDetailsRequest, now time.Time) {
	setIf(&d.PresidingOfficer, req.PresidingOfficer)
	setIf(&d.Form34ARef, req.Form34ARef)
	setIf(&d.PollingDate, req.PollingDate)
	setIf(&d.OpeningTime, req.OpeningTime)
	setIf(&d.ClosingTime, req.ClosingTime)
	setIf(&d.AgentsSigned, req.AgentsSigned)
	setIf(&d.AgentsRefused, req.AgentsRefused)
	setIf(&d.RefusalReasons, req.RefusalReasons)
	setIf(&d.Remarks, req.Remarks)
	d.UpdatedAt = now
}

// ApplyConstituencyDetails patches 34B narrative fields.
func ApplyConstituencyDetails(d *models.ConstituencyResultDraft, req models.ConstituencyDetailsRequest, now time.Time) {
	setIf(&d.ReturningOfficer, req.ReturningOfficer)
	setIf(&d.Form34BRef, req.Form34BRef)
	setIf(&d.Remarks, req.Remarks)
	d.UpdatedAt = now
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
