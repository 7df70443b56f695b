package kafka

import (
	"context"
	"log/slog"
)

// NoopEventBus logs events without sending them anywhere. Used when no Kafka
// brokers are configured.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, orderID string) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderCanceled(_ context.Context, orderID string) error {
	slog.Debug("event::order_canceled", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderItemCanceled(_ context.Context, orderID, orderItemID string) error {
	slog.Debug("event::order_item_canceled", "order_id", orderID, "order_item_id", orderItemID)
	return nil
}
