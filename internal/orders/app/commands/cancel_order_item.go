package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopkit/ordering/internal/auth"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// CancelOrderItemCommand moves a single order item to a new status. When the
// target status is CANCELED the item's stock is restored first, and the
// parent order cascades to CANCELED once every sibling is canceled.
type CancelOrderItemCommand struct {
	Requester   auth.Identity
	OrderItemID string
	NewStatus   string
}

type CancelOrderItemHandler interface {
	Handle(ctx context.Context, cmd CancelOrderItemCommand) (*domain.Order, error)
}

type CancelOrderItemCommandHandler struct {
	repo    ports.OrderRepository
	catalog ports.CatalogClient
	events  ports.EventBus
}

func NewCancelOrderItemCommandHandler(
	repo ports.OrderRepository,
	catalog ports.CatalogClient,
	events ports.EventBus,
) *CancelOrderItemCommandHandler {
	return &CancelOrderItemCommandHandler{
		repo:    repo,
		catalog: catalog,
		events:  events,
	}
}

func (h *CancelOrderItemCommandHandler) Handle(ctx context.Context, cmd CancelOrderItemCommand) (*domain.Order, error) {
	item, err := h.repo.GetOrderItem(ctx, cmd.OrderItemID)
	if err != nil {
		return nil, err
	}

	order, err := h.repo.GetOrder(ctx, item.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load parent order: %w", err)
	}

	if err := authorize(cmd.Requester, order.Email); err != nil {
		return nil, err
	}

	newStatus, err := domain.ParseStatus(cmd.NewStatus)
	if err != nil {
		return nil, err
	}

	if newStatus == item.Status {
		return nil, fmt.Errorf("%w: %s", ErrSameStatus, newStatus)
	}

	if _, err := item.Status.Transition(newStatus); err != nil {
		return nil, err
	}

	if newStatus == domain.StatusCanceled {
		// Restore before mutating: a restore failure must leave the item as-is.
		if err := h.catalog.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("%w: product %d: %v", ErrStockRestoreFailed, item.ProductID, err)
		}
	}

	if err := h.repo.UpdateItemStatus(ctx, item.ID, newStatus); err != nil {
		return nil, fmt.Errorf("update item status: %w", err)
	}

	// Re-read siblings from the store: concurrent per-item cancellations must
	// all observe the same persisted picture before cascading.
	siblings, err := h.repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load sibling items: %w", err)
	}

	if domain.AllCanceled(siblings) {
		if err := h.repo.UpdateOrderStatus(ctx, order.ID, domain.StatusCanceled); err != nil {
			return nil, fmt.Errorf("cascade order cancellation: %w", err)
		}
		order.Status = domain.StatusCanceled
	}

	if newStatus == domain.StatusCanceled {
		if err := h.events.PublishOrderItemCanceled(ctx, order.ID, item.ID); err != nil {
			slog.WarnContext(ctx, "failed to publish order item canceled event",
				"order_id", order.ID,
				"order_item_id", item.ID,
				"error", err,
			)
		}
	}

	return order, nil
}
