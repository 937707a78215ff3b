// Package memory provides the default in-memory decision-log recorder. It
// retains entries for inspection and fans them out over a message queue so
// other components (UI notifications, exporters) can consume them.
package memory

import (
	"context"
	"sync"

	"github.com/BigSlikTobi/NightLedger/internal/clock"
	"github.com/BigSlikTobi/NightLedger/internal/idgen"
	"github.com/BigSlikTobi/NightLedger/service/audit"
	"github.com/BigSlikTobi/NightLedger/service/dao"
	"github.com/BigSlikTobi/NightLedger/service/dao/store"
	"github.com/BigSlikTobi/NightLedger/service/messaging"
	qmem "github.com/BigSlikTobi/NightLedger/service/messaging/memory"
)

func entryKey(e *audit.Entry) string { return e.ID }

// Service records decision-log entries in arrival order.
type Service struct {
	entries dao.Service[string, audit.Entry]
	events  messaging.Queue[audit.Entry]

	mu    sync.Mutex
	order []string
}

// New creates an in-memory recorder with a default fan-out queue.
func New(options ...Option) *Service {
	ret := &Service{
		entries: store.NewMemoryStore[string, audit.Entry](entryKey),
		events:  qmem.NewQueue[audit.Entry](qmem.DefaultConfig()),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Log stores a copy of the entry and publishes it to the fan-out queue.
// Entries without an id or creation time receive them here.
func (s *Service) Log(ctx context.Context, entry *audit.Entry) {
	if entry == nil {
		return
	}
	recorded := *entry
	if recorded.ID == "" {
		recorded.ID = idgen.New()
	}
	if recorded.CreatedAt.IsZero() {
		recorded.CreatedAt = clock.Now()
	}
	_ = s.entries.Save(ctx, &recorded)
	s.mu.Lock()
	s.order = append(s.order, recorded.ID)
	s.mu.Unlock()
	if s.events != nil {
		_ = s.events.Publish(ctx, &recorded)
	}
}

// Entries returns all recorded entries in arrival order.
func (s *Service) Entries(ctx context.Context) []*audit.Entry {
	s.mu.Lock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	s.mu.Unlock()
	out := make([]*audit.Entry, 0, len(ids))
	for _, id := range ids {
		if entry, _ := s.entries.Load(ctx, id); entry != nil {
			out = append(out, entry)
		}
	}
	return out
}

// Queue exposes the fan-out queue.
func (s *Service) Queue() messaging.Queue[audit.Entry] { return s.events }

var _ audit.Service = (*Service)(nil)
