package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	ID string
}

func TestQueue_PublishConsumeAck(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &payload{ID: "a"}))
	assert.Equal(t, 1, queue.Size())

	msg, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "a", msg.T().ID)
	assert.NoError(t, msg.Ack())
	assert.Error(t, msg.Ack())
}

func TestQueue_NackRequeues(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = time.Millisecond
	queue := NewQueue[payload](config)
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &payload{ID: "a"}))
	msg, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, msg.Nack(errors.New("transient")))

	consumeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	retried, err := queue.Consume(consumeCtx)
	assert.NoError(t, err)
	assert.Equal(t, "a", retried.T().ID)
}

func TestQueue_NackMovesToDLQAfterRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 0
	queue := NewQueue[payload](config)
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &payload{ID: "a"}))
	msg, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, msg.Nack(errors.New("fatal")))
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueue_ConsumeHonoursContext(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := queue.Consume(ctx)
	assert.Error(t, err)
}
