// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"testing"
	"time"

	"github.com/danielhkuo/fieldtally/models"
)

var testCandidates = []models.Candidate{
	{ID: 1, Name: "Jane Doe", Party: "ABC"},
	{ID: 2, Name: "John Roe", Party: "XYZ"},
	{ID: 3, Name: "Mary Major"},
}

func newTestStation(registered int) *models.StationResultDraft {
	return NewStationDraft(models.CreateStationRequest{
		StationID:        "0421",
		RegisteredVoters: registered,
	}, testCandidates, time.Now())
}

func TestNewStationDraft(t *testing.T) {
	d := newTestStation(500)

	if len(d.Entries) != len(testCandidates) {
		t.Fatalf("Expected %d entries, got %d", len(testCandidates), len(d.Entries))
	}
	for i, e := range d.Entries {
		if e.CandidateID != testCandidates[i].ID {
			t.Errorf("entry %d: expected candidate %d, got %d", i, testCandidates[i].ID, e.CandidateID)
		}
		if e.Votes != 0 {
			t.Errorf("entry %d: expected zero votes, got %d", i, e.Votes)
		}
	}
	if d.State() != models.StateFresh {
		t.Errorf("Expected fresh state, got %s", d.State())
	}
	if d.RegisteredVoters != 500 {
		t.Errorf("Expected 500 registered voters, got %d", d.RegisteredVoters)
	}
}

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"integer", "120", 120},
		{"zero", "0", 0},
		{"decimal floors", "12.9", 12},
		{"negative clamps", "-7", 0},
		{"negative decimal clamps", "-0.5", 0},
		{"whitespace", " 42 ", 42},
		{"non-numeric", "abc", 0},
		{"empty", "", 0},
		{"nan", "NaN", 0},
		{"infinity", "Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceCount(tt.raw); got != tt.expected {
				t.Errorf("CoerceCount(%q) = %d, want %d", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestSetVote(t *testing.T) {
	d := newTestStation(500)

	if err := SetVote(d, 0, "120", time.Now()); err != nil {
		t.Fatalf("SetVote failed: %v", err)
	}
	if d.Entries[0].Votes != 120 {
		t.Errorf("Expected 120 votes, got %d", d.Entries[0].Votes)
	}
	if d.TotalValid != 120 {
		t.Errorf("Expected total_valid 120, got %d", d.TotalValid)
	}
	if d.State() != models.StateDrafted {
		t.Errorf("Expected drafted state after edit, got %s", d.State())
	}
}

func TestSetVoteClampsNegative(t *testing.T) {
	d := newTestStation(500)

	if err := SetVote(d, 0, "-7", time.Now()); err != nil {
		t.Fatalf("SetVote failed: %v", err)
	}
	if d.Entries[0].Votes != 0 {
		t.Errorf("Expected clamped 0 votes, got %d", d.Entries[0].Votes)
	}
}

func TestSetVoteIndexOutOfRange(t *testing.T) {
	d := newTestStation(500)

	if err := SetVote(d, -1, "5", time.Now()); err != ErrIndexOutOfRange {
		t.Errorf("Expected ErrIndexOutOfRange for -1, got %v", err)
	}
	if err := SetVote(d, len(d.Entries), "5", time.Now()); err != ErrIndexOutOfRange {
		t.Errorf("Expected ErrIndexOutOfRange past end, got %v", err)
	}
}

func TestRecompute(t *testing.T) {
	d := newTestStation(1000)
	now := time.Now()
	SetVote(d, 0, "120", now)
	SetVote(d, 1, "80", now)

	rejected := "5"
	ApplyCounts(d, models.SetCountsRequest{Rejected: &rejected}, now)

	if d.TotalValid != 200 {
		t.Errorf("Expected total_valid 200, got %d", d.TotalValid)
	}
	if d.TotalVotes != 205 {
		t.Errorf("Expected total_votes 205, got %d", d.TotalVotes)
	}
	if d.Turnout != 20.5 {
		t.Errorf("Expected turnout 20.5, got %f", d.Turnout)
	}
}

func TestRecomputeZeroRegistration(t *testing.T) {
	d := newTestStation(0)
	SetVote(d, 0, "50", time.Now())

	if d.Turnout != 0 {
		t.Errorf("Expected zero turnout without registration, got %f", d.Turnout)
	}
}

func TestApplyCountsStationOnlyFields(t *testing.T) {
	d := newTestStation(500)
	disputed, spoilt := "3", "2.7"
	ApplyCounts(d, models.SetCountsRequest{Disputed: &disputed, Spoilt: &spoilt}, time.Now())

	if d.DisputedVotes != 3 {
		t.Errorf("Expected 3 disputed, got %d", d.DisputedVotes)
	}
	if d.SpoiltVotes != 2 {
		t.Errorf("Expected floored 2 spoilt, got %d", d.SpoiltVotes)
	}

	// Disputed/spoilt do not exist on the 34B variant and must be ignored
	c := NewConstituencyDraft(models.CreateConstituencyRequest{ConstituencyID: "117"}, testCandidates, time.Now())
	ApplyCounts(c, models.SetCountsRequest{Disputed: &disputed}, time.Now())
	if c.RejectedVotes != 0 {
		t.Errorf("34B rejected votes unexpectedly changed: %d", c.RejectedVotes)
	}
}

func TestValidateOK(t *testing.T) {
	d := newTestStation(1000)
	now := time.Now()
	SetVote(d, 0, "120", now)
	SetVote(d, 1, "80", now)

	if verr := Validate(d); verr != nil {
		t.Errorf("Expected valid draft, got %v", verr)
	}
}

func TestValidateRuleOrder(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		mutate   func(d *models.StationResultDraft)
		expected string
	}{
		{
			"negative vote",
			func(d *models.StationResultDraft) {
				// Only reachable through a hand-edited or legacy payload
				d.Entries[0].Votes = -1
				d.Entries[1].CandidateID = 0
			},
			models.ValidationInvalidVoteCount,
		},
		{
			"invalid candidate id",
			func(d *models.StationResultDraft) {
				d.Entries[0].CandidateID = 0
				d.Entries[1].CandidateID = d.Entries[2].CandidateID
			},
			models.ValidationInvalidCandidateReference,
		},
		{
			"duplicate candidate",
			func(d *models.StationResultDraft) {
				d.Entries[1].CandidateID = d.Entries[0].CandidateID
			},
			models.ValidationDuplicateCandidate,
		},
		{
			"negative auxiliary",
			func(d *models.StationResultDraft) {
				d.SpoiltVotes = -2
			},
			models.ValidationInvalidAuxiliaryCount,
		},
		{
			"turnout exceeds registration",
			func(d *models.StationResultDraft) {
				d.RegisteredVoters = 100
				SetVote(d, 0, "90", now)
				rejected := "15"
				ApplyCounts(d, models.SetCountsRequest{Rejected: &rejected}, now)
			},
			models.ValidationTurnoutExceedsRegistration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestStation(1000)
			tt.mutate(d)

			verr := Validate(d)
			if verr == nil {
				t.Fatal("Expected a validation error, got nil")
			}
			if verr.Code != tt.expected {
				t.Errorf("Expected code %s, got %s (%s)", tt.expected, verr.Code, verr.Message)
			}
		})
	}
}

func TestValidateTurnoutBoundary(t *testing.T) {
	// Exactly at registration is still valid
	d := newTestStation(100)
	now := time.Now()
	SetVote(d, 0, "90", now)
	rejected := "10"
	ApplyCounts(d, models.SetCountsRequest{Rejected: &rejected}, now)

	if verr := Validate(d); verr != nil {
		t.Errorf("Expected total == registered to be valid, got %v", verr)
	}
}

func TestPayload(t *testing.T) {
	d := newTestStation(1000)
	now := time.Now()
	SetVote(d, 0, "120", now)
	d.PresidingOfficer = "A. Officer"
	d.Form34ARef = "F-0042"

	p := Payload(d, "device-1", models.SubmissionStatusSubmitted)

	if p.EntityID != "0421" || p.Form != models.Form34A {
		t.Errorf("Unexpected payload identity: %+v", p)
	}
	if p.DeviceID != "device-1" {
		t.Errorf("Expected device id on payload, got %q", p.DeviceID)
	}
	if p.TotalValid != 120 || len(p.Entries) != 3 {
		t.Errorf("Unexpected payload ledger: %+v", p)
	}
	if p.Officer != "A. Officer" || p.FormRef != "F-0042" {
		t.Errorf("Unexpected payload narrative: %+v", p)
	}
	if p.Status != models.SubmissionStatusSubmitted {
		t.Errorf("Expected submitted status, got %q", p.Status)
	}
}

func TestApplyStationDetailsPartial(t *testing.T) {
	d := newTestStation(500)
	d.PresidingOfficer = "Original Officer"

	ref := "F-0042"
	ApplyStationDetails(d, models.StationDetailsRequest{Form34ARef: &ref}, time.Now())

	if d.PresidingOfficer != "Original Officer" {
		t.Errorf("nil field overwrote presiding officer: %q", d.PresidingOfficer)
	}
	if d.Form34ARef != "F-0042" {
		t.Errorf("Expected form ref update, got %q", d.Form34ARef)
	}
}
