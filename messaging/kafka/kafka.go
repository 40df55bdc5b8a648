package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Broker publishes JSON-encoded events to Kafka. One writer is shared across topics.
type Broker struct {
	writer *kafkaGo.Writer
}

// NewBroker creates a publisher for the given brokers.
func NewBroker(brokers []string) *Broker {
	return &Broker{writer: &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(brokers...),
		Balancer:               &kafkaGo.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}}
}

func (b *Broker) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

// Close flushes pending messages and closes the writer.
func (b *Broker) Close() error {
	return b.writer.Close()
}
