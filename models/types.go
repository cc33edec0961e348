package models

import "time"

// Form kinds. The prefix also scopes storage keys so a station draft can
// never collide with a constituency draft for the same numeric id.
const (
	Form34A = "34a"
	Form34B = "34b"
)

// Draft lifecycle states
const (
	StateFresh     = "fresh"
	StateDrafted   = "drafted"
	StateSubmitted = "submitted"
)

// Candidate is immutable reference data from the candidate source.
type Candidate struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party,omitempty"`
}

// ResultEntry is one candidate's vote count, index-aligned to the canonical
// candidate list supplied when the draft was created.
type ResultEntry struct {
	CandidateID int64 `json:"candidate_id"`
	Votes       int   `json:"votes"`
}

// ResultCore holds the numeric ledger and lifecycle fields shared by the
// 34A and 34B draft variants. Derived totals are cached, not computed on
// read: they are part of the submission payload and must match what the
// operator saw.
type ResultCore struct {
	// Candidates is the canonical list snapshot taken at draft creation.
	// Entries stay index-aligned to it for the life of the draft.
	Candidates       []Candidate   `json:"candidates"`
	Entries          []ResultEntry `json:"entries"`
	RejectedVotes    int           `json:"rejected_votes"`
	RegisteredVoters int           `json:"registered_voters"`
	TotalValid       int           `json:"total_valid"`
	TotalVotes       int           `json:"total_votes"`
	Turnout          float64       `json:"turnout"`
	Remarks          string        `json:"remarks"`
	Submitted        bool          `json:"submitted"`
	BackendRef       string        `json:"backend_ref,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// State derives the lifecycle state from the core's flags and timestamps.
func (c *ResultCore) State() string {
	if c.Submitted {
		return StateSubmitted
	}
	if c.UpdatedAt.After(c.CreatedAt) {
		return StateDrafted
	}
	return StateFresh
}

// StationResultDraft is an in-progress or finalized Form 34A submission for
// one polling station.
type StationResultDraft struct {
	StationID    string `json:"station_id"`
	StationName  string `json:"station_name"`
	Ward         string `json:"ward"`
	Constituency string `json:"constituency"`
	County       string `json:"county"`

	ResultCore

	DisputedVotes int `json:"disputed_votes"`
	SpoiltVotes   int `json:"spoilt_votes"`

	PresidingOfficer string `json:"presiding_officer"`
	Form34ARef       string `json:"form_34a_ref"`
	PollingDate      string `json:"polling_date"`
	OpeningTime      string `json:"opening_time"`
	ClosingTime      string `json:"closing_time"`
	AgentsSigned     string `json:"agents_signed"`
	AgentsRefused    string `json:"agents_refused"`
	RefusalReasons   string `json:"refusal_reasons"`
}

// ConstituencyResultDraft is an in-progress or finalized Form 34B submission
// aggregating one constituency.
type ConstituencyResultDraft struct {
	ConstituencyID   string `json:"constituency_id"`
	ConstituencyName string `json:"constituency_name"`
	County           string `json:"county"`

	ResultCore

	ReturningOfficer string `json:"returning_officer"`
	Form34BRef       string `json:"form_34b_ref"`
}

// ResultDraft is the common face of the two draft variants. The tally,
// reconcile, store, and engine packages operate through it so 34A and 34B
// share one ledger, one validator, and one state machine.
type ResultDraft interface {
	Core() *ResultCore
	FormKind() string
	EntityID() string
	StorageKey() string
}

func (d *StationResultDraft) Core() *ResultCore { return &d.ResultCore }
func (d *StationResultDraft) FormKind() string  { return Form34A }
func (d *StationResultDraft) EntityID() string  { return d.StationID }
func (d *StationResultDraft) StorageKey() string {
	return StationKey(d.StationID)
}

func (d *ConstituencyResultDraft) Core() *ResultCore { return &d.ResultCore }
func (d *ConstituencyResultDraft) FormKind() string  { return Form34B }
func (d *ConstituencyResultDraft) EntityID() string  { return d.ConstituencyID }
func (d *ConstituencyResultDraft) StorageKey() string {
	return ConstituencyKey(d.ConstituencyID)
}

// StationKey derives the storage key for a station (34A) draft.
func StationKey(stationID string) string {
	return Form34A + ":" + stationID
}

// ConstituencyKey derives the storage key for a constituency (34B) draft.
func ConstituencyKey(constituencyID string) string {
	return Form34B + ":" + constituencyID
}
