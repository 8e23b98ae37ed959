package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types emitted by the core.
const (
	ServerCreated  = "server.created"
	ServerDeleted  = "server.deleted"
	MemberJoined   = "member.joined"
	MemberLeft     = "member.left"
	ChannelCreated = "channel.created"
	ChannelDeleted = "channel.deleted"
	MessageSent    = "message.sent"
	MessageUpdated = "message.updated"
	MessageDeleted = "message.deleted"
)

// Event is a domain event keyed by the server it concerns.
type Event struct {
	Type      string    `json:"type"`
	ServerID  string    `json:"serverId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	EntityID  string    `json:"entityId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is the outbound event port. Delivery is best-effort; the core
// never fails an operation because a publish failed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaPublisher writes events to a single topic, partitioned by server id.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ServerID),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop discards events, used in tests and when no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, event Event) error { return nil }
func (Noop) Close() error                                   { return nil }
