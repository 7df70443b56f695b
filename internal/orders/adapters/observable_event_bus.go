package adapters

import (
	"context"
	"time"

	"github.com/shopkit/ordering/internal/kafka"
	"github.com/shopkit/ordering/internal/orders/ports"
	"github.com/shopkit/ordering/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableEventBus wraps an EventBus with spans and producer metrics.
type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderCreated")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("topic", kafka.TopicOrderCreated),
	)

	start := time.Now()
	err := e.bus.PublishOrderCreated(ctx, orderID)
	e.metrics.RecordPublish(ctx, kafka.TopicOrderCreated, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderCanceled(ctx context.Context, orderID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderCanceled")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("topic", kafka.TopicOrderCanceled),
	)

	start := time.Now()
	err := e.bus.PublishOrderCanceled(ctx, orderID)
	e.metrics.RecordPublish(ctx, kafka.TopicOrderCanceled, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderItemCanceled(ctx context.Context, orderID, orderItemID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderItemCanceled")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("order_item.id", orderItemID),
		attribute.String("topic", kafka.TopicOrderItemCanceled),
	)

	start := time.Now()
	err := e.bus.PublishOrderItemCanceled(ctx, orderID, orderItemID)
	e.metrics.RecordPublish(ctx, kafka.TopicOrderItemCanceled, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
