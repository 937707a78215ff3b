// Package fixture supplies the demo-mode data sources: a staged agent run
// with a journal and two pending approvals, served with simulated latency so
// the loading states stay observable.
package fixture

import (
	"context"
	"time"

	"github.com/BigSlikTobi/NightLedger/model"
)

var demoEvents = []model.Record{
	{
		"title":           "Session Started",
		"summary":         "New audit session initialized for researcher access.",
		"timestamp":       "2026-02-15T10:00:00.000Z",
		"risk_level":      "low",
		"approval_status": "none",
	},
	{
		"title":           "Spend Request",
		"summary":         "Agent requested 50.00 USD for GPU compute credits.",
		"timestamp":       "2026-02-15T10:15:00.000Z",
		"risk_level":      "high",
		"approval_status": "required",
		"evidence_links": []interface{}{
			"https://example.com/billing/quote-123",
			"https://example.com/compute/usage",
		},
	},
	{
		"title":           "Domain Access",
		"summary":         "Agent requested access to internal database 'vector-prod-01'.",
		"timestamp":       "2026-02-15T10:30:00.000Z",
		"risk_level":      "medium",
		"approval_status": "pending",
	},
	{
		"title":           "Policy Update",
		"summary":         "System policy 'SP-004' updated to restrict outbound API calls.",
		"timestamp":       "2026-02-15T10:45:00.000Z",
		"risk_level":      "low",
		"approval_status": "approved",
	},
	{
		"title":           "Credential Rotation",
		"summary":         "Automatic rotation of SSH keys for worker nodes failed.",
		"timestamp":       "2026-02-15T11:00:00.000Z",
		"risk_level":      "critical",
		"approval_status": "rejected",
		"evidence_links": []interface{}{
			"https://example.com/logs/rotation-error",
		},
	},
}

var demoPendingApprovals = []model.Record{
	{
		"event_id":   "evt_101",
		"title":      "AWS Spend Request",
		"summary":    "Agent requested 50.00 USD for GPU compute credits.",
		"risk_level": "high",
		"details":    "This request is for a new experiment in the 'vector-prod-01' domain.",
	},
	{
		"event_id":   "evt_102",
		"title":      "Database Access",
		"summary":    "Agent requested write access to internal database.",
		"risk_level": "medium",
		"details":    "The agent needs to persist results of the compute run.",
	},
}

// Service serves the demo fixtures.
type Service struct {
	latency time.Duration
}

type Option func(s *Service)

// WithLatency sets the simulated response latency.
func WithLatency(latency time.Duration) Option {
	return func(s *Service) { s.latency = latency }
}

// New creates the demo source with a default latency matching the staged UI.
func New(options ...Option) *Service {
	ret := &Service{latency: 120 * time.Millisecond}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// JournalEvents returns the staged journal after the simulated delay.
func (s *Service) JournalEvents(ctx context.Context) ([]model.Record, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return append([]model.Record(nil), demoEvents...), nil
}

// PendingApprovals returns the staged approval queue after the simulated
// delay.
func (s *Service) PendingApprovals(ctx context.Context) ([]model.Record, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return append([]model.Record(nil), demoPendingApprovals...), nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
