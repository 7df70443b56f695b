package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopkit/ordering/internal/auth"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// UpdateOrderStatusCommand transitions a whole order through the status
// machine. Transitions to CANCELED are rejected here because cancellation
// owns the compensating stock restoration.
type UpdateOrderStatusCommand struct {
	Requester auth.Identity
	OrderID   string
	NewStatus string
}

type UpdateOrderStatusHandler interface {
	Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error)
}

type UpdateOrderStatusCommandHandler struct {
	repo ports.OrderRepository
}

func NewUpdateOrderStatusCommandHandler(repo ports.OrderRepository) *UpdateOrderStatusCommandHandler {
	return &UpdateOrderStatusCommandHandler{repo: repo}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error) {
	order, err := h.repo.GetOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if err := authorize(cmd.Requester, order.Email); err != nil {
		return nil, err
	}

	newStatus, err := domain.ParseStatus(cmd.NewStatus)
	if err != nil {
		return nil, err
	}

	if newStatus == domain.StatusCanceled {
		return nil, ErrCancelViaStatus
	}

	next, err := order.Status.Transition(newStatus)
	if err != nil {
		return nil, err
	}

	if err := h.repo.SetOrderAndItemsStatus(ctx, order.ID, next); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	return order, nil
}
