package commands_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

type mockRepository struct {
	createOrderFn            func(ctx context.Context, order domain.Order, items []domain.OrderItem) error
	getOrderFn               func(ctx context.Context, id string) (*domain.Order, error)
	getOrderItemFn           func(ctx context.Context, id string) (*domain.OrderItem, error)
	listOrderItemsFn         func(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	updateOrderStatusFn      func(ctx context.Context, id string, status domain.OrderStatus) error
	updateItemStatusFn       func(ctx context.Context, id string, status domain.OrderStatus) error
	setOrderAndItemsStatusFn func(ctx context.Context, orderID string, status domain.OrderStatus) error
}

func (m *mockRepository) CreateOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) error {
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, order, items)
	}
	return nil
}

func (m *mockRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if m.getOrderFn != nil {
		return m.getOrderFn(ctx, id)
	}
	return nil, ports.ErrOrderNotFound
}

func (m *mockRepository) GetOrderItem(ctx context.Context, id string) (*domain.OrderItem, error) {
	if m.getOrderItemFn != nil {
		return m.getOrderItemFn(ctx, id)
	}
	return nil, ports.ErrOrderItemNotFound
}

func (m *mockRepository) ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	if m.listOrderItemsFn != nil {
		return m.listOrderItemsFn(ctx, orderID)
	}
	return nil, nil
}

func (m *mockRepository) ListOrders(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if m.updateOrderStatusFn != nil {
		return m.updateOrderStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockRepository) UpdateItemStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if m.updateItemStatusFn != nil {
		return m.updateItemStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockRepository) SetOrderAndItemsStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if m.setOrderAndItemsStatusFn != nil {
		return m.setOrderAndItemsStatusFn(ctx, orderID, status)
	}
	return nil
}

type mockUserClient struct {
	findUserByEmailFn func(ctx context.Context, email string) (*ports.User, error)
}

func (m *mockUserClient) FindUserByEmail(ctx context.Context, email string) (*ports.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return &ports.User{ID: 1, Email: email, Address: "1 Main St"}, nil
}

type mockCartClient struct {
	getCartFn         func(ctx context.Context, email string) ([]ports.CartItem, error)
	removeCartItemsFn func(ctx context.Context, email string, cartItemIDs []int64) error
}

func (m *mockCartClient) GetCart(ctx context.Context, email string) ([]ports.CartItem, error) {
	if m.getCartFn != nil {
		return m.getCartFn(ctx, email)
	}
	return nil, nil
}

func (m *mockCartClient) RemoveCartItems(ctx context.Context, email string, cartItemIDs []int64) error {
	if m.removeCartItemsFn != nil {
		return m.removeCartItemsFn(ctx, email, cartItemIDs)
	}
	return nil
}

type mockCatalogClient struct {
	getProductsByIDsFn func(ctx context.Context, productIDs []int64) ([]ports.Product, error)
	decrementStockFn   func(ctx context.Context, productID int64, quantity int) error
	restoreStockFn     func(ctx context.Context, productID int64, quantity int) error
}

func (m *mockCatalogClient) GetProductsByIDs(ctx context.Context, productIDs []int64) ([]ports.Product, error) {
	if m.getProductsByIDsFn != nil {
		return m.getProductsByIDsFn(ctx, productIDs)
	}
	return nil, nil
}

func (m *mockCatalogClient) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	if m.decrementStockFn != nil {
		return m.decrementStockFn(ctx, productID, quantity)
	}
	return nil
}

func (m *mockCatalogClient) RestoreStock(ctx context.Context, productID int64, quantity int) error {
	if m.restoreStockFn != nil {
		return m.restoreStockFn(ctx, productID, quantity)
	}
	return nil
}

type mockEventBus struct {
	publishOrderCreatedFn      func(ctx context.Context, orderID string) error
	publishOrderCanceledFn     func(ctx context.Context, orderID string) error
	publishOrderItemCanceledFn func(ctx context.Context, orderID, orderItemID string) error
}

func (m *mockEventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	if m.publishOrderCreatedFn != nil {
		return m.publishOrderCreatedFn(ctx, orderID)
	}
	return nil
}

func (m *mockEventBus) PublishOrderCanceled(ctx context.Context, orderID string) error {
	if m.publishOrderCanceledFn != nil {
		return m.publishOrderCanceledFn(ctx, orderID)
	}
	return nil
}

func (m *mockEventBus) PublishOrderItemCanceled(ctx context.Context, orderID, orderItemID string) error {
	if m.publishOrderItemCanceledFn != nil {
		return m.publishOrderItemCanceledFn(ctx, orderID, orderItemID)
	}
	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
