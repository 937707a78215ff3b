package memory

import (
	"context"
	"testing"
	"time"

	"github.com/BigSlikTobi/NightLedger/service/audit"
	"github.com/stretchr/testify/assert"
)

func TestService_LogKeepsArrivalOrder(t *testing.T) {
	svc := New()
	ctx := context.Background()

	svc.Log(ctx, &audit.Entry{Event: audit.DecisionRequested, EventID: "evt-1"})
	svc.Log(ctx, &audit.Entry{Event: audit.DecisionCompleted, EventID: "evt-1"})

	entries := svc.Entries(ctx)
	assert.Len(t, entries, 2)
	assert.Equal(t, audit.DecisionRequested, entries[0].Event)
	assert.Equal(t, audit.DecisionCompleted, entries[1].Event)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestService_LogFansOutOverQueue(t *testing.T) {
	svc := New()
	ctx := context.Background()

	svc.Log(ctx, &audit.Entry{Event: audit.DecisionFailed, EventID: "evt-9", Error: "boom"})

	consumeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	msg, err := svc.Queue().Consume(consumeCtx)
	assert.NoError(t, err)
	assert.Equal(t, "evt-9", msg.T().EventID)
	assert.NoError(t, msg.Ack())
}

func TestService_LogIgnoresNil(t *testing.T) {
	svc := New()
	svc.Log(context.Background(), nil)
	assert.Empty(t, svc.Entries(context.Background()))
}
