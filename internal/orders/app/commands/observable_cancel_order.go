package commands

import (
	"context"
	"log/slog"

	"github.com/shopkit/ordering/internal/orders/metrics"
	"github.com/shopkit/ordering/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCancelOrderHandler struct {
	handler CancelOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCancelOrderHandler(handler CancelOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCancelOrderHandler {
	return &ObservableCancelOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "CancelOrderCommand.Handle")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", cmd.OrderID),
	)

	err := o.handler.Handle(ctx, cmd)
	o.metrics.RecordOrderCanceled(ctx, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to cancel order",
			"order_id", cmd.OrderID,
			"error", err,
		)
		return err
	}

	o.logger.InfoContext(ctx, "order canceled", "order_id", cmd.OrderID)
	telemetry.SetSpanSuccess(span)

	return nil
}
