package controller

import "github.com/BigSlikTobi/NightLedger/model"

// Status describes the lifecycle of one loading concern. The journal feed
// and the pending-approval feed each carry their own independent status.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is the controller's session aggregate. The controller owns it
// exclusively; listeners only ever observe copies.
type State struct {
	RunID  string         `json:"runId"`
	Status Status         `json:"status"`
	Error  string         `json:"error"`
	Events []model.Record `json:"events"`

	PendingStatus    Status         `json:"pendingStatus"`
	PendingError     string         `json:"pendingError"`
	PendingApprovals []model.Record `json:"pendingApprovals"`

	// PendingSubmission tracks in-flight decision submissions by their
	// effective key. Completed submissions stay in the map with value false.
	PendingSubmission map[string]bool `json:"pendingSubmissionByEventId"`
}

// Listener receives a full state snapshot after every mutation. The snapshot
// is a copy - mutating it cannot corrupt controller state.
type Listener func(State)

// clone returns a full copy of the state, records included. A listener
// writing into its snapshot must never reach controller-owned data.
func (s *State) clone() State {
	out := *s
	out.Events = cloneRecords(s.Events)
	out.PendingApprovals = cloneRecords(s.PendingApprovals)
	out.PendingSubmission = make(map[string]bool, len(s.PendingSubmission))
	for k, v := range s.PendingSubmission {
		out.PendingSubmission[k] = v
	}
	return out
}

func cloneRecords(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	for i, record := range records {
		out[i] = cloneRecord(record)
	}
	return out
}

func cloneRecord(record model.Record) model.Record {
	if record == nil {
		return nil
	}
	out := make(model.Record, len(record))
	for k, v := range record {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch actual := v.(type) {
	case map[string]interface{}:
		return cloneRecord(actual)
	case []interface{}:
		out := make([]interface{}, len(actual))
		for i, item := range actual {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Cards projects the currently loaded raw events into sorted, normalized
// timeline cards.
func (s State) Cards() []*model.Card {
	return model.Project(s.Events)
}
