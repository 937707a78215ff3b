// Package audit defines the decision-log sink that receives approval
// lifecycle entries. The sink is fire-and-forget: implementations must not
// block controller operations and failures are swallowed.
package audit

import (
	"context"
	"time"
)

// Lifecycle event names emitted around an approval submission.
const (
	DecisionRequested = "approval_decision_requested"
	DecisionCompleted = "approval_decision_completed"
	DecisionFailed    = "approval_decision_failed"
)

// Entry is a single decision-log record.
type Entry struct {
	ID         string    `json:"id,omitempty"`
	Event      string    `json:"event"`
	RunID      string    `json:"runId"`
	EventID    string    `json:"eventId"`
	DecisionID string    `json:"decisionId,omitempty"`
	Decision   string    `json:"decision"`
	ApproverID string    `json:"approverId,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Service receives decision lifecycle entries.
type Service interface {
	Log(ctx context.Context, entry *Entry)
}

// Func adapts a plain function to Service.
type Func func(ctx context.Context, entry *Entry)

func (f Func) Log(ctx context.Context, entry *Entry) { f(ctx, entry) }

// Nop returns a sink that discards all entries.
func Nop() Service {
	return Func(func(context.Context, *Entry) {})
}
