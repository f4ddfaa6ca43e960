package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

type testEvent struct {
	StoreID string  `json:"store_id"`
	Total   float64 `json:"total"`
}

func (e testEvent) EventKey() string { return e.StoreID }

func TestPublishKeysByEvent(t *testing.T) {
	w := &recordingWriter{}
	p := NewPublisherWithWriter(w)
	at := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	require.NoError(t, p.Publish(context.Background(), testEvent{StoreID: "store-1", Total: 150}))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "store-1", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "store-1", decoded["store_id"])
	assert.Equal(t, 150.0, decoded["total"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishReturnsWriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker unavailable")}
	err := NewPublisherWithWriter(w).Publish(context.Background(), testEvent{StoreID: "s"})
	assert.EqualError(t, err, "broker unavailable")
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), testEvent{}))
	assert.NoError(t, p.Close())
}

type blockingWriter struct {
	release chan struct{}
	mu      sync.Mutex
	msgs    []kafka.Message
}

func (w *blockingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	select {
	case <-w.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *blockingWriter) Close() error { return nil }

func TestAsyncPublisherDoesNotWaitForBroker(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	p := NewAsyncPublisher(NewPublisherWithWriter(w), 8, time.Minute)

	start := time.Now()
	require.NoError(t, p.Publish(context.Background(), testEvent{StoreID: "a"}))
	require.NoError(t, p.Publish(context.Background(), testEvent{StoreID: "b"}))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(w.release)
	require.NoError(t, p.Close())
	assert.Len(t, w.msgs, 2, "Close drains queued events")

	assert.ErrorIs(t, p.Publish(context.Background(), testEvent{}), ErrClosed)
}

func TestAsyncPublisherRejectsWhenFull(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	p := NewAsyncPublisher(NewPublisherWithWriter(w), 1, time.Minute)

	// The worker holds at most one event while blocked, the buffer one more.
	var full bool
	for i := 0; i < 3; i++ {
		if errors.Is(p.Publish(context.Background(), testEvent{StoreID: "s"}), ErrQueueFull) {
			full = true
		}
	}
	assert.True(t, full)

	close(w.release)
	require.NoError(t, p.Close())
}

func TestAsyncPublisherTimesOutDelivery(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	p := NewAsyncPublisher(NewPublisherWithWriter(w), 1, 10*time.Millisecond)

	require.NoError(t, p.Publish(context.Background(), testEvent{StoreID: "s"}))
	require.NoError(t, p.Close())
	assert.Empty(t, w.msgs)
}
