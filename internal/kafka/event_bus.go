package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicOrderCreated      = "order.created"
	TopicOrderCanceled     = "order.canceled"
	TopicOrderItemCanceled = "order.item.canceled"
)

type event struct {
	OrderID     string    `json:"order_id"`
	OrderItemID string    `json:"order_item_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventBus publishes order lifecycle events to Kafka, one writer per topic.
type EventBus struct {
	writers map[string]*kafka.Writer
}

// NewEventBus constructs writers for the order topics.
func NewEventBus(brokers []string) *EventBus {
	topics := []string{TopicOrderCreated, TopicOrderCanceled, TopicOrderItemCanceled}
	writers := make(map[string]*kafka.Writer, len(topics))
	for _, topic := range topics {
		writers[topic] = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
	}
	return &EventBus{writers: writers}
}

func (b *EventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	return b.publish(ctx, TopicOrderCreated, orderID, event{OrderID: orderID, OccurredAt: time.Now().UTC()})
}

func (b *EventBus) PublishOrderCanceled(ctx context.Context, orderID string) error {
	return b.publish(ctx, TopicOrderCanceled, orderID, event{OrderID: orderID, OccurredAt: time.Now().UTC()})
}

func (b *EventBus) PublishOrderItemCanceled(ctx context.Context, orderID, orderItemID string) error {
	return b.publish(ctx, TopicOrderItemCanceled, orderID, event{
		OrderID:     orderID,
		OrderItemID: orderItemID,
		OccurredAt:  time.Now().UTC(),
	})
}

func (b *EventBus) publish(ctx context.Context, topic, key string, payload event) error {
	writer, ok := b.writers[topic]
	if !ok {
		return fmt.Errorf("no writer for topic %s", topic)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if err := writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes all topic writers.
func (b *EventBus) Close() error {
	var firstErr error
	for _, writer := range b.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
