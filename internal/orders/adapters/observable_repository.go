package adapters

import (
	"context"
	"time"

	"github.com/shopkit/ordering/internal/database"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
	"github.com/shopkit/ordering/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableRepository wraps an OrderRepository with spans and query metrics.
type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) CreateOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.CreateOrder")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.Int("order.item_count", len(items)),
		attribute.String("operation", "create_order"),
	)

	start := time.Now()
	err := r.repo.CreateOrder(ctx, order, items)
	r.metrics.RecordQuery(ctx, "create_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.GetOrder")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id),
		attribute.String("operation", "get_order"),
	)

	start := time.Now()
	order, err := r.repo.GetOrder(ctx, id)
	r.metrics.RecordQuery(ctx, "get_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (r *ObservableRepository) GetOrderItem(ctx context.Context, id string) (*domain.OrderItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.GetOrderItem")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order_item.id", id),
		attribute.String("operation", "get_order_item"),
	)

	start := time.Now()
	item, err := r.repo.GetOrderItem(ctx, id)
	r.metrics.RecordQuery(ctx, "get_order_item", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return item, nil
}

func (r *ObservableRepository) ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.ListOrderItems")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("operation", "list_order_items"),
	)

	start := time.Now()
	items, err := r.repo.ListOrderItems(ctx, orderID)
	r.metrics.RecordQuery(ctx, "list_order_items", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(items)))
	telemetry.SetSpanSuccess(span)
	return items, nil
}

func (r *ObservableRepository) ListOrders(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.ListOrders")
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("operation", "list_orders"),
		attribute.Int("page", filter.Page),
		attribute.Int("page_size", filter.PageSize),
	}
	if filter.Email != nil {
		attrs = append(attrs, attribute.String("filter.email", *filter.Email))
	}
	telemetry.AddSpanAttributes(span, attrs...)

	start := time.Now()
	orders, err := r.repo.ListOrders(ctx, filter)
	r.metrics.RecordQuery(ctx, "list_orders", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (r *ObservableRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.UpdateOrderStatus")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id),
		attribute.String("order.new_status", string(status)),
		attribute.String("operation", "update_order_status"),
	)

	start := time.Now()
	err := r.repo.UpdateOrderStatus(ctx, id, status)
	r.metrics.RecordQuery(ctx, "update_order_status", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) UpdateItemStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.UpdateItemStatus")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order_item.id", id),
		attribute.String("order_item.new_status", string(status)),
		attribute.String("operation", "update_item_status"),
	)

	start := time.Now()
	err := r.repo.UpdateItemStatus(ctx, id, status)
	r.metrics.RecordQuery(ctx, "update_item_status", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) SetOrderAndItemsStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.SetOrderAndItemsStatus")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("order.new_status", string(status)),
		attribute.String("operation", "set_order_and_items_status"),
	)

	start := time.Now()
	err := r.repo.SetOrderAndItemsStatus(ctx, orderID, status)
	r.metrics.RecordQuery(ctx, "set_order_and_items_status", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
