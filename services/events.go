package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"eightify/model"
	"eightify/utils"

	"github.com/segmentio/kafka-go"
)

// ActivityEvent is the payload published for every recorded activity.
type ActivityEvent struct {
	Type       string               `json:"type"`
	OccurredAt time.Time            `json:"occurred_at"`
	Activity   model.ActivityRecord `json:"activity"`
}

const ActivityRecordedEvent = "activity.recorded"

const activityQueueSize = 256

var (
	ErrPublishQueueFull = errors.New("activity event queue full")
	ErrPublisherClosed  = errors.New("activity publisher closed")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaActivityPublisher queues activity events and writes them from one
// background goroutine, keyed by user id so one user's events stay ordered
// within a partition. Callers never wait on the broker.
type KafkaActivityPublisher struct {
	writer  messageWriter
	timeout time.Duration
	queue   chan kafka.Message
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewKafkaActivityPublisher(brokers []string, topic string, timeout time.Duration) *KafkaActivityPublisher {
	return newActivityPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: timeout,
		MaxAttempts:  3,
	}, activityQueueSize, timeout)
}

func newActivityPublisher(writer messageWriter, queueSize int, timeout time.Duration) *KafkaActivityPublisher {
	p := &KafkaActivityPublisher{
		writer:  writer,
		timeout: timeout,
		queue:   make(chan kafka.Message, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// PublishActivity queues the event and returns at once. A full queue drops
// the event.
func (p *KafkaActivityPublisher) PublishActivity(_ context.Context, record model.ActivityRecord) error {
	msg, err := activityMessage(record)
	if err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("%w: dropping activity %s", ErrPublisherClosed, record.ID)
	}
	select {
	case p.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%w: dropping activity %s", ErrPublishQueueFull, record.ID)
	}
}

func (p *KafkaActivityPublisher) run() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			log.Printf("Error publishing activity event for %s: %v", msg.Key, err)
			utils.TrackStorageFailure("events", "publish")
		}
	}
}

// Close stops accepting events, flushes the queue and closes the writer.
func (p *KafkaActivityPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}

func activityMessage(record model.ActivityRecord) (kafka.Message, error) {
	payload, err := json.Marshal(ActivityEvent{
		Type:       ActivityRecordedEvent,
		OccurredAt: record.EndTime,
		Activity:   record,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal activity event: %v", err)
	}
	return kafka.Message{
		Key:   []byte(record.UserID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ActivityRecordedEvent)},
		},
	}, nil
}

// NoopActivityPublisher is used when no brokers are configured.
type NoopActivityPublisher struct{}

func (NoopActivityPublisher) PublishActivity(context.Context, model.ActivityRecord) error {
	return nil
}

func (NoopActivityPublisher) Close() error { return nil }
