package memory

import (
	"github.com/BigSlikTobi/NightLedger/service/audit"
	"github.com/BigSlikTobi/NightLedger/service/messaging"
)

type Option func(s *Service)

// WithQueue overrides the fan-out queue. Passing nil disables fan-out.
func WithQueue(queue messaging.Queue[audit.Entry]) Option {
	return func(s *Service) {
		s.events = queue
	}
}
