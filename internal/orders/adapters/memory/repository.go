package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development and
// tests. Orders and items live in independent maps keyed by id.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	items  map[string]domain.OrderItem
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		orders: make(map[string]domain.Order),
		items:  make(map[string]domain.OrderItem),
	}
}

// CreateOrder stores the order and all items, or nothing.
func (r *Repository) CreateOrder(_ context.Context, order domain.Order, items []domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	for _, item := range items {
		r.items[item.ID] = item
	}
	return nil
}

// GetOrder fetches a single order by identifier.
func (r *Repository) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	copy := order
	return &copy, nil
}

// GetOrderItem fetches a single order item by identifier.
func (r *Repository) GetOrderItem(_ context.Context, id string) (*domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrOrderItemNotFound
	}
	copy := item
	return &copy, nil
}

// ListOrderItems returns all items of an order sorted by id.
func (r *Repository) ListOrderItems(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []domain.OrderItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ListOrders returns orders respecting the provided filter. Pagination is 1-based.
func (r *Repository) ListOrders(_ context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Order
	for _, order := range r.orders {
		if filter.Email != nil && order.Email != *filter.Email {
			continue
		}
		if filter.ExcludeStatus != nil && order.Status == *filter.ExcludeStatus {
			continue
		}
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(result) {
		return []domain.Order{}, nil
	}

	end := start + pageSize
	if end > len(result) {
		end = len(result)
	}

	slice := make([]domain.Order, end-start)
	copy(slice, result[start:end])

	return slice, nil
}

// UpdateOrderStatus sets the status and updatedAt timestamp for an order.
func (r *Repository) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return ports.ErrOrderNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	r.orders[id] = order
	return nil
}

// UpdateItemStatus sets the status of a single order item.
func (r *Repository) UpdateItemStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return ports.ErrOrderItemNotFound
	}

	item.Status = status
	r.items[id] = item
	return nil
}

// SetOrderAndItemsStatus updates the order and its non-canceled items together.
func (r *Repository) SetOrderAndItemsStatus(_ context.Context, orderID string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrOrderNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = order

	for id, item := range r.items {
		if item.OrderID != orderID || item.Status == domain.StatusCanceled {
			continue
		}
		item.Status = status
		r.items[id] = item
	}
	return nil
}
