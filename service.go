package nightledger

import (
	"context"

	"github.com/BigSlikTobi/NightLedger/service/approval"
	"github.com/BigSlikTobi/NightLedger/service/audit"
	amemory "github.com/BigSlikTobi/NightLedger/service/audit/memory"
	"github.com/BigSlikTobi/NightLedger/service/client"
	"github.com/BigSlikTobi/NightLedger/service/controller"
	"github.com/BigSlikTobi/NightLedger/service/fixture"
)

// Service assembles the timeline review surface for one run.
type Service struct {
	config   *Config
	client   *client.Service
	fixtures *fixture.Service
	audit    audit.Service
	listener controller.Listener

	// source overrides, bound ahead of the defaults
	events  controller.EventsSource
	pending controller.ApprovalsSource
	resolve controller.Resolver

	controller *controller.Service
}

// New creates a Service. Without options it runs in demo mode against the
// built-in fixtures.
func New(options ...Option) *Service {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	ret.ensureBaseSetup()
	ret.controller = controller.New(ret.config.RunID, ret.controllerOptions()...)
	return ret
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.audit == nil {
		s.audit = amemory.New()
	}
	if s.fixtures == nil {
		s.fixtures = fixture.New(fixture.WithLatency(s.config.DemoLatency))
	}
	if s.client == nil && s.config.Mode == ModeLive {
		s.client = client.New(s.config.APIBase)
	}
}

func (s *Service) controllerOptions() []controller.Option {
	options := []controller.Option{
		controller.WithAuditService(s.audit),
		controller.WithListener(s.listener),
		controller.WithDemoEvents(s.fixtures.JournalEvents),
		controller.WithDemoApprovals(s.fixtures.PendingApprovals),
	}
	events := s.events
	pending := s.pending
	resolve := s.resolve
	if s.client != nil {
		if events == nil {
			events = s.client.JournalEvents
		}
		if pending == nil {
			pending = s.client.PendingApprovals
		}
		if resolve == nil {
			resolve = s.client.ResolveApproval
		}
	}
	if events != nil {
		options = append(options, controller.WithEventsSource(events))
	}
	if pending != nil {
		options = append(options, controller.WithApprovalsSource(pending))
	}
	if resolve != nil {
		options = append(options, controller.WithResolver(resolve))
	}
	return options
}

// Controller exposes the timeline controller.
func (s *Service) Controller() *controller.Service { return s.controller }

// Config returns the effective configuration.
func (s *Service) Config() *Config { return s.config }

// Audit returns the decision-log sink in use.
func (s *Service) Audit() audit.Service { return s.audit }

// Load refreshes the journal feed.
func (s *Service) Load(ctx context.Context) { s.controller.Load(ctx) }

// LoadPendingApprovals refreshes the pending-approval feed.
func (s *Service) LoadPendingApprovals(ctx context.Context) {
	s.controller.LoadPendingApprovals(ctx)
}

// SubmitDecision submits one approval decision.
func (s *Service) SubmitDecision(ctx context.Context, targetID, decision string, dc approval.DecisionContext) {
	s.controller.SubmitDecision(ctx, targetID, decision, dc)
}
