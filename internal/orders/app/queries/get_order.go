package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopkit/ordering/internal/auth"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// ErrForbidden is returned when the requester may not read the order.
var ErrForbidden = errors.New("not allowed to access this order")

// GetOrderQuery retrieves one order with enriched items.
type GetOrderQuery struct {
	Requester auth.Identity
	OrderID   string
}

// Validate ensures the query has valid parameters.
func (q GetOrderQuery) Validate() error {
	if strings.TrimSpace(q.OrderID) == "" {
		return errors.New("order_id is required")
	}
	return nil
}

type GetOrderQueryHandler struct {
	repo    ports.OrderRepository
	catalog ports.CatalogClient
}

func NewGetOrderQueryHandler(repo ports.OrderRepository, catalog ports.CatalogClient) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{repo: repo, catalog: catalog}
}

func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetOrder(ctx, query.OrderID)
	if err != nil {
		return nil, err
	}

	if !query.Requester.IsAdmin() && order.Email != query.Requester.Email {
		return nil, ErrForbidden
	}

	items, err := h.repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	details, err := enrichOrders(ctx, h.catalog, []domain.Order{*order}, map[string][]domain.OrderItem{order.ID: items})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}
