package models

// Request types

type CreateStationRequest struct {
	StationID        string      `json:"station_id"`
	StationName      string      `json:"station_name"`
	Ward             string      `json:"ward"`
	Constituency     string      `json:"constituency"`
	County           string      `json:"county"`
	RegisteredVoters int         `json:"registered_voters"`
	Candidates       []Candidate `json:"candidates"`
}

type CreateConstituencyRequest struct {
	ConstituencyID   string      `json:"constituency_id"`
	ConstituencyName string      `json:"constituency_name"`
	County           string      `json:"county"`
	RegisteredVoters int         `json:"registered_voters"`
	Candidates       []Candidate `json:"candidates"`
}

// SetVoteRequest carries one untrusted vote edit. Value is raw operator
// text; coercion happens server-side.
type SetVoteRequest struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

// SetCountsRequest updates auxiliary counts. Nil fields are left alone;
// provided fields are coerced with the same clamp rule as votes.
type SetCountsRequest struct {
	Rejected         *string `json:"rejected"`
	Disputed         *string `json:"disputed"`
	Spoilt           *string `json:"spoilt"`
	RegisteredVoters *string `json:"registered_voters"`
}

// StationDetailsRequest updates 34A narrative fields. Nil means "no change".
type StationDetailsRequest struct {
	PresidingOfficer *string `json:"presiding_officer"`
	Form34ARef       *string `json:"form_34a_ref"`
	PollingDate      *string `json:"polling_date"`
	OpeningTime      *string `json:"opening_time"`
	ClosingTime      *string `json:"closing_time"`
	AgentsSigned     *string `json:"agents_signed"`
	AgentsRefused    *string `json:"agents_refused"`
	RefusalReasons   *string `json:"refusal_reasons"`
	Remarks          *string `json:"remarks"`
}

// ConstituencyDetailsRequest updates 34B narrative fields.
type ConstituencyDetailsRequest struct {
	ReturningOfficer *string `json:"returning_officer"`
	Form34BRef       *string `json:"form_34b_ref"`
	Remarks          *string `json:"remarks"`
}

// Response types

type CreateDraftResponse struct {
	Key      string `json:"key"`
	AgentKey string `json:"agent_key"`
	Created  bool   `json:"created"`
}

type StationDraftResponse struct {
	State string              `json:"state"`
	Busy  bool                `json:"busy"`
	Draft *StationResultDraft `json:"draft"`
}

type ConstituencyDraftResponse struct {
	State string                   `json:"state"`
	Busy  bool                     `json:"busy"`
	Draft *ConstituencyResultDraft `json:"draft"`
}

type SaveResponse struct {
	State      string `json:"state"`
	Pushed     bool   `json:"pushed"`
	BackendRef string `json:"backend_ref,omitempty"`
}

type SubmitResponse struct {
	State      string `json:"state"`
	BackendRef string `json:"backend_ref,omitempty"`
}

// Error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
