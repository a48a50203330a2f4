package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"docportal/internal/model"
)

// NotificationEvent is the outbound message for a recorded notification.
type NotificationEvent struct {
	Event        string             `json:"event"`
	Notification model.Notification `json:"notification"`
	OccurredAt   time.Time          `json:"occurredAt"`
}

// EventNotificationCreated names the event published after a notification is stored.
const EventNotificationCreated = "notification.created"

// Publisher delivers notification events to downstream consumers (mail, push, audit).
type Publisher interface {
	PublishNotification(ctx context.Context, n model.Notification) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) PublishNotification(context.Context, model.Notification) error { return nil }
func (Noop) Close() error                                                   { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes notification events to a Kafka topic keyed by recipient,
// so one recipient's events stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	now    func() time.Time
}

// Each publish is written synchronously, so a partial batch is flushed after
// batchTimeout instead of the writer's one second default.
const (
	batchTimeout = 10 * time.Millisecond
	writeTimeout = 5 * time.Second
)

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
	}
	return &KafkaPublisher{writer: writer, topic: topic, now: time.Now}, nil
}

func (p *KafkaPublisher) PublishNotification(ctx context.Context, n model.Notification) error {
	payload, err := json.Marshal(NotificationEvent{
		Event:        EventNotificationCreated,
		Notification: n,
		OccurredAt:   p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(n.RecipientID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
