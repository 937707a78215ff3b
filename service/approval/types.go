package approval

import (
	"github.com/BigSlikTobi/NightLedger/model"
	"github.com/viant/toolbox"
)

// Decision values accepted by the resolve collaborator.
const (
	Approved = "approved"
	Rejected = "rejected"
)

// DemoRunID selects demo mode: fixture sources, no per-run filtering and no
// re-fetch after mutations.
const DemoRunID = "demo"

// DecisionContext carries submission metadata forwarded to the resolver and
// the decision log.
type DecisionContext struct {
	ApproverID string `json:"approverId,omitempty"`
	Reason     string `json:"reason,omitempty"`
	DecisionID string `json:"decisionId,omitempty"`
	EventID    string `json:"eventId,omitempty"`
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	return toolbox.AsString(v)
}

// EventID returns the event identifier of a pending item.
func EventID(item model.Record) string {
	return asString(item["event_id"])
}

// DecisionID returns the decision identifier of a pending item, when present.
func DecisionID(item model.Record) string {
	return asString(item["decision_id"])
}

// EffectiveKey returns the canonical submission key: the decision id when
// present, the event id otherwise.
func EffectiveKey(item model.Record) string {
	if id := DecisionID(item); id != "" {
		return id
	}
	return EventID(item)
}

// Matches reports whether a pending item is addressed by targetID, either via
// its effective key or its raw event id.
func Matches(item model.Record, targetID string) bool {
	if item == nil {
		return false
	}
	return EffectiveKey(item) == targetID || EventID(item) == targetID
}
