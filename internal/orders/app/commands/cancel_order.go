package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopkit/ordering/internal/auth"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// CancelOrderCommand cancels a whole order and restores catalog stock.
type CancelOrderCommand struct {
	Requester auth.Identity
	OrderID   string
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd CancelOrderCommand) error
}

type CancelOrderCommandHandler struct {
	repo    ports.OrderRepository
	catalog ports.CatalogClient
	events  ports.EventBus
}

func NewCancelOrderCommandHandler(
	repo ports.OrderRepository,
	catalog ports.CatalogClient,
	events ports.EventBus,
) *CancelOrderCommandHandler {
	return &CancelOrderCommandHandler{
		repo:    repo,
		catalog: catalog,
		events:  events,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	order, err := h.repo.GetOrder(ctx, cmd.OrderID)
	if err != nil {
		return err
	}

	if err := authorize(cmd.Requester, order.Email); err != nil {
		return err
	}

	// Idempotent-reject: a second cancellation is an error so double-cancel
	// bugs surface instead of restoring stock twice.
	if order.Status == domain.StatusCanceled {
		return fmt.Errorf("%w: id %s", ErrAlreadyCanceled, order.ID)
	}

	items, err := h.repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}

	// Restore stock before touching any status: a failure leaves the order
	// unchanged and the operation can be retried. Items canceled individually
	// earlier already had their stock restored and are skipped.
	for _, item := range items {
		if item.Status == domain.StatusCanceled {
			continue
		}
		if err := h.catalog.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("%w: product %d: %v", ErrStockRestoreFailed, item.ProductID, err)
		}
	}

	if err := h.repo.SetOrderAndItemsStatus(ctx, order.ID, domain.StatusCanceled); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	if err := h.events.PublishOrderCanceled(ctx, order.ID); err != nil {
		slog.WarnContext(ctx, "failed to publish order canceled event", "order_id", order.ID, "error", err)
	}

	return nil
}

func authorize(requester auth.Identity, ownerEmail string) error {
	if requester.IsAdmin() {
		return nil
	}
	if requester.Email != ownerEmail {
		return ErrForbidden
	}
	return nil
}
