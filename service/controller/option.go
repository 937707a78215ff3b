package controller

import "github.com/BigSlikTobi/NightLedger/service/audit"

type Option func(s *Service)

// WithEventsSource sets the live journal source.
func WithEventsSource(source EventsSource) Option {
	return func(s *Service) { s.events = source }
}

// WithDemoEvents sets the demo-mode journal fixture source.
func WithDemoEvents(source DemoSource) Option {
	return func(s *Service) { s.demoEvents = source }
}

// WithApprovalsSource sets the live pending-approvals source.
func WithApprovalsSource(source ApprovalsSource) Option {
	return func(s *Service) { s.pending = source }
}

// WithDemoApprovals sets the optional demo-mode approvals fixture source.
func WithDemoApprovals(source ApprovalsSource) Option {
	return func(s *Service) { s.demoPending = source }
}

// WithResolver sets the approval-resolution collaborator.
func WithResolver(resolver Resolver) Option {
	return func(s *Service) { s.resolve = resolver }
}

// WithAuditService sets the decision-log sink.
func WithAuditService(svc audit.Service) Option {
	return func(s *Service) { s.audit = svc }
}

// WithListener sets the state-snapshot listener.
func WithListener(listener Listener) Option {
	return func(s *Service) { s.listener = listener }
}
