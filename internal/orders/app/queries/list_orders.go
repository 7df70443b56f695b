package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopkit/ordering/internal/auth"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// ListOrdersQuery lists an owner's non-canceled orders. Administrators may
// list any owner's orders, or every order when no owner filter is given.
type ListOrdersQuery struct {
	Requester auth.Identity
	Email     string
	Page      int
	PageSize  int
}

type ListOrdersQueryHandler struct {
	repo    ports.OrderRepository
	catalog ports.CatalogClient
}

func NewListOrdersQueryHandler(repo ports.OrderRepository, catalog ports.CatalogClient) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo, catalog: catalog}
}

func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderDetails, error) {
	email := strings.TrimSpace(query.Email)

	if !query.Requester.IsAdmin() {
		if email == "" {
			email = query.Requester.Email
		}
		if email != query.Requester.Email {
			return nil, ErrForbidden
		}
	}

	excluded := domain.StatusCanceled
	filter := ports.ListFilter{
		ExcludeStatus: &excluded,
		Page:          query.Page,
		PageSize:      query.PageSize,
	}
	if email != "" {
		filter.Email = &email
	}

	orders, err := h.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	itemsByOrder := make(map[string][]domain.OrderItem, len(orders))
	for _, order := range orders {
		items, err := h.repo.ListOrderItems(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("load items for order %s: %w", order.ID, err)
		}
		itemsByOrder[order.ID] = items
	}

	return enrichOrders(ctx, h.catalog, orders, itemsByOrder)
}
