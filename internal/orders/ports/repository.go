package ports

import (
	"context"
	"errors"

	"github.com/shopkit/ordering/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application
// layer. Orders and items live in separate tables; CreateOrder persists both
// in a single transaction.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	GetOrderItem(ctx context.Context, id string) (*domain.OrderItem, error)
	ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
	UpdateItemStatus(ctx context.Context, id string, status domain.OrderStatus) error
	// SetOrderAndItemsStatus moves the order and every one of its items to
	// the given status in one transaction.
	SetOrderAndItemsStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

// ListFilter narrows list queries by owner and status.
type ListFilter struct {
	Email         *string
	ExcludeStatus *domain.OrderStatus
	Page          int
	PageSize      int
}

var (
	// ErrOrderNotFound is returned when the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderItemNotFound is returned when the requested order item does not exist.
	ErrOrderItemNotFound = errors.New("order item not found")
)
