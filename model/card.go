package model

// Record is a raw journal event or approval item as decoded from JSON. The
// backend emits several field-name variants; normalization resolves them.
type Record = map[string]interface{}

// EvidenceItem is a single piece of supporting evidence attached to an event.
type EvidenceItem struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Ref   string `json:"ref"`
}

// Flags carries display hints derived from the risk and approval labels.
type Flags struct {
	IsRisky       bool `json:"isRisky"`
	NeedsApproval bool `json:"needsApproval"`
	IsApproved    bool `json:"isApproved"`
	IsRejected    bool `json:"isRejected"`
}

// Card is the normalized journal event. It is constructed fresh on every
// load and immutable after construction.
type Card struct {
	ID            string         `json:"id"`
	EventID       string         `json:"eventId"`
	EventType     string         `json:"eventType"`
	Actor         string         `json:"actor"`
	PayloadPath   string         `json:"payloadPath"`
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	Timestamp     string         `json:"timestamp"`
	TimeText      string         `json:"timeText"`
	RiskLabel     string         `json:"riskLabel"`
	ApprovalLabel string         `json:"approvalLabel"`
	EvidenceItems []EvidenceItem `json:"evidenceItems"`
	EvidenceLinks []string       `json:"evidenceLinks"`
	Flags         Flags          `json:"flags"`
}
