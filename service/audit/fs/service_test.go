package fs

import (
	"context"
	"strings"
	"testing"

	"github.com/BigSlikTobi/NightLedger/service/audit"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

func TestService_LogWritesJSONL(t *testing.T) {
	fs := afs.New()
	URL := "mem://localhost/nightledger/decisions.jsonl"
	svc := New(fs, URL)
	ctx := context.Background()

	svc.Log(ctx, &audit.Entry{Event: audit.DecisionRequested, RunID: "run-1", EventID: "evt-1", Decision: "approved"})
	svc.Log(ctx, &audit.Entry{Event: audit.DecisionCompleted, RunID: "run-1", EventID: "evt-1", Decision: "approved"})

	data, err := fs.DownloadWithURL(ctx, URL)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], audit.DecisionRequested)
	assert.Contains(t, lines[1], audit.DecisionCompleted)
}

func TestService_LogIgnoresNil(t *testing.T) {
	fs := afs.New()
	URL := "mem://localhost/nightledger/empty.jsonl"
	svc := New(fs, URL)
	svc.Log(context.Background(), nil)

	exists, _ := fs.Exists(context.Background(), URL)
	assert.False(t, exists)
}
