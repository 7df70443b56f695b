package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus captures the lifecycle of an order and of each order item.
type OrderStatus string

const (
	StatusPending  OrderStatus = "PENDING"
	StatusOrdered  OrderStatus = "ORDERED"
	StatusCanceled OrderStatus = "CANCELED"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ParseStatus converts a wire-level status string into an OrderStatus.
func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusOrdered:
		return StatusOrdered, nil
	case StatusCanceled:
		return StatusCanceled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// CanTransitionTo reports whether the status machine allows moving to next.
// PENDING -> ORDERED -> CANCELED; CANCELED is absorbing.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusOrdered || next == StatusCanceled
	case StatusOrdered:
		return next == StatusCanceled
	default:
		return false
	}
}

// Transition validates and returns the next status. The current value is
// never mutated; callers persist the returned status explicitly.
func (s OrderStatus) Transition(next OrderStatus) (OrderStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// IsTerminal indicates whether the status permits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCanceled
}

// Order is the purchase aggregate owned by a user. Items reference the order
// by id only; there is no embedded back-pointer in either direction.
type Order struct {
	ID         string          `json:"id"`
	UserID     int64           `json:"user_id"`
	Email      string          `json:"email"`
	Address    string          `json:"address"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderItem is one product/quantity/price line within an order. UnitPrice is
// a snapshot taken at order time, not a live reference to the catalog price.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Status    OrderStatus     `json:"status"`
}

// LineTotal returns unit price times quantity in fixed-point arithmetic.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder is the single constructor for the aggregate. It enforces the
// creation invariants: non-empty address, at least one item, positive
// quantities, and a stored total equal to the sum of the line totals.
func NewOrder(id string, userID int64, email, address string, items []OrderItem, now time.Time) (Order, []OrderItem, error) {
	if strings.TrimSpace(email) == "" {
		return Order{}, nil, errors.New("email is required")
	}
	if strings.TrimSpace(address) == "" {
		return Order{}, nil, errors.New("address is required")
	}
	if len(items) == 0 {
		return Order{}, nil, errors.New("order must contain at least one item")
	}

	total := decimal.Zero
	for idx := range items {
		if items[idx].Quantity <= 0 {
			return Order{}, nil, fmt.Errorf("item %d: quantity must be positive", idx)
		}
		if items[idx].UnitPrice.IsNegative() {
			return Order{}, nil, fmt.Errorf("item %d: unit price must be non-negative", idx)
		}
		items[idx].OrderID = id
		items[idx].Status = StatusPending
		total = total.Add(items[idx].LineTotal())
	}

	order := Order{
		ID:         id,
		UserID:     userID,
		Email:      email,
		Address:    address,
		TotalPrice: total,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return order, items, nil
}

// AllCanceled reports whether every item has reached CANCELED. The parent
// order status cascades to CANCELED only when this holds.
func AllCanceled(items []OrderItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.Status != StatusCanceled {
			return false
		}
	}
	return true
}
