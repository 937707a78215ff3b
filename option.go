package nightledger

import (
	"github.com/BigSlikTobi/NightLedger/service/audit"
	"github.com/BigSlikTobi/NightLedger/service/client"
	"github.com/BigSlikTobi/NightLedger/service/controller"
	"github.com/BigSlikTobi/NightLedger/tracing"
)

type Option func(s *Service)

// WithConfig sets the service configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithClient overrides the API client used in live mode.
func WithClient(svc *client.Service) Option {
	return func(s *Service) { s.client = svc }
}

// WithAuditService sets the decision-log sink.
func WithAuditService(svc audit.Service) Option {
	return func(s *Service) { s.audit = svc }
}

// WithStateListener sets the snapshot listener pushed to the rendering layer.
func WithStateListener(listener controller.Listener) Option {
	return func(s *Service) { s.listener = listener }
}

// WithEventsSource overrides the live journal source, mainly for tests.
func WithEventsSource(source controller.EventsSource) Option {
	return func(s *Service) { s.events = source }
}

// WithApprovalsSource overrides the live pending-approvals source.
func WithApprovalsSource(source controller.ApprovalsSource) Option {
	return func(s *Service) { s.pending = source }
}

// WithResolver overrides the approval-resolution collaborator.
func WithResolver(resolver controller.Resolver) Option {
	return func(s *Service) { s.resolve = resolver }
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used. Safe to call multiple times - the first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}
