// Package kafka publishes domain events to a Kafka topic. Events are
// published best effort after the owning transaction commits; delivery
// guarantees end at the broker acknowledgment.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/Shopify/sarama"
)

// envelope is the wire format for published events. The payload keeps the
// event's own JSON shape under a stable outer frame.
type envelope struct {
	EventName  string          `json:"event_name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Publisher implements ports.EventPublisher on top of a sarama SyncProducer.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher creates a publisher writing to the given topic. The producer
// must be configured with Producer.Return.Successes enabled, which
// NewSyncProducerFor takes care of.
func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

// NewSyncProducerFor connects a synchronous producer to the given brokers
// with the configuration the publisher requires.
func NewSyncProducerFor(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return producer, nil
}

// Publish sends each event as one message keyed by event name, so consumers
// see all events of a kind in order.
func (p *Publisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to encode event %s: %w", event.EventName(), err)
		}

		message, err := json.Marshal(envelope{
			EventName:  event.EventName(),
			OccurredAt: time.Now().UTC(),
			Payload:    payload,
		})
		if err != nil {
			return fmt.Errorf("failed to encode envelope for %s: %w", event.EventName(), err)
		}

		_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.EventName()),
			Value: sarama.ByteEncoder(message),
		})
		if err != nil {
			return fmt.Errorf("failed to publish %s: %w", event.EventName(), err)
		}
	}

	return nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
