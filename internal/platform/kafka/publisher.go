package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	logx "github.com/georgemunganga/stockbook-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// ErrQueueFull is returned by AsyncPublisher when its buffer has no room.
var ErrQueueFull = errors.New("event queue full")

// ErrClosed is returned when publishing after Close.
var ErrClosed = errors.New("publisher closed")

// Event is a domain event published to a topic. Key selects the partition.
type Event interface {
	EventKey() string
}

// Publisher sends domain events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Writer is the part of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer Writer
	now    func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	})
}

// NewPublisherWithWriter builds a publisher over an existing writer.
func NewPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w, now: time.Now}
}

func (k *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventKey()),
		Value: msg,
		Time:  k.now(),
	})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// AsyncPublisher queues events and delivers them from one background goroutine,
// so Publish never waits on the broker. Delivery failures are logged.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	events  chan Event
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAsyncPublisher starts delivering to next. Each delivery gets its own timeout.
func NewAsyncPublisher(next Publisher, buffer int, timeout time.Duration) *AsyncPublisher {
	p := &AsyncPublisher{
		next:    next,
		timeout: timeout,
		events:  make(chan Event, buffer),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues the event without blocking. The request context is not used for delivery.
func (p *AsyncPublisher) Publish(_ context.Context, event Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.events <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for event := range p.events {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.next.Publish(ctx, event); err != nil {
			logx.Warn().Err(err).Str("key", event.EventKey()).Msg("failed to deliver event")
		}
		cancel()
	}
}

// Close stops accepting events, drains the queue and closes the underlying publisher.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
	p.mu.Unlock()

	<-p.done
	return p.next.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
