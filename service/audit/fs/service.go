// Package fs persists decision-log entries as JSON lines through the
// abstract file storage layer, so the audit trail can land on local disk or
// any afs-supported backend (s3, gs, mem) by URL scheme alone.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/BigSlikTobi/NightLedger/internal/clock"
	"github.com/BigSlikTobi/NightLedger/internal/idgen"
	"github.com/BigSlikTobi/NightLedger/service/audit"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Service appends entries to a JSONL document at the configured URL.
type Service struct {
	fs  afs.Service
	URL string

	mu  sync.Mutex
	buf bytes.Buffer
}

// New creates a file-backed decision log.
func New(fs afs.Service, URL string) *Service {
	return &Service{fs: fs, URL: URL}
}

// Log marshals the entry and rewrites the log document. Failures are
// swallowed - the sink is fire-and-forget by contract.
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
	data, err := json.Marshal(recorded)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Write(data)
	s.buf.WriteByte('\n')
	_ = s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(s.buf.Bytes()))
}

var _ audit.Service = (*Service)(nil)
