package app

import (
	"context"
	"log/slog"

	"github.com/shopkit/ordering/internal/auth"
	"github.com/shopkit/ordering/internal/orders/app/commands"
	"github.com/shopkit/ordering/internal/orders/app/queries"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/metrics"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// Service bundles the order use cases exposed over the API.
type Service struct {
	idemStore         ports.IdempotencyStore
	createOrder       commands.CreateOrderHandler
	cancelOrder       commands.CancelOrderHandler
	cancelOrderItem   commands.CancelOrderItemHandler
	updateOrderStatus commands.UpdateOrderStatusHandler
	getOrderHandler   *queries.GetOrderQueryHandler
	listOrdersHandler *queries.ListOrdersQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	users ports.UserClient,
	cart ports.CartClient,
	catalog ports.CatalogClient,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	createHandler := commands.NewCreateOrderCommandHandler(repo, users, cart, catalog, events)
	cancelHandler := commands.NewCancelOrderCommandHandler(repo, catalog, events)

	return &Service{
		idemStore:         idem,
		createOrder:       commands.NewObservableCreateOrderHandler(createHandler, logger, metrics),
		cancelOrder:       commands.NewObservableCancelOrderHandler(cancelHandler, logger, metrics),
		cancelOrderItem:   commands.NewCancelOrderItemCommandHandler(repo, catalog, events),
		updateOrderStatus: commands.NewUpdateOrderStatusCommandHandler(repo),
		getOrderHandler:   queries.NewGetOrderQueryHandler(repo, catalog),
		listOrdersHandler: queries.NewListOrdersQueryHandler(repo, catalog),
	}
}

// CreateOrder runs the full creation workflow for the selected cart items.
func (s *Service) CreateOrder(ctx context.Context, requester auth.Identity, cartItemIDs []int64, addressOverride string) (*domain.Order, error) {
	return s.createOrder.Handle(ctx, commands.CreateOrderCommand{
		Requester:       requester,
		CartItemIDs:     cartItemIDs,
		AddressOverride: addressOverride,
	})
}

// CancelOrder cancels a whole order and restores its stock.
func (s *Service) CancelOrder(ctx context.Context, requester auth.Identity, orderID string) error {
	return s.cancelOrder.Handle(ctx, commands.CancelOrderCommand{
		Requester: requester,
		OrderID:   orderID,
	})
}

// CancelOrderItem transitions a single item and returns the refreshed order.
func (s *Service) CancelOrderItem(ctx context.Context, requester auth.Identity, orderItemID, newStatus string) (*queries.OrderDetails, error) {
	order, err := s.cancelOrderItem.Handle(ctx, commands.CancelOrderItemCommand{
		Requester:   requester,
		OrderItemID: orderItemID,
		NewStatus:   newStatus,
	})
	if err != nil {
		return nil, err
	}
	return s.getOrderHandler.Handle(ctx, queries.GetOrderQuery{Requester: requester, OrderID: order.ID})
}

// UpdateOrderStatus transitions a whole order through the status machine.
func (s *Service) UpdateOrderStatus(ctx context.Context, requester auth.Identity, orderID, newStatus string) (*domain.Order, error) {
	return s.updateOrderStatus.Handle(ctx, commands.UpdateOrderStatusCommand{
		Requester: requester,
		OrderID:   orderID,
		NewStatus: newStatus,
	})
}

// GetOrder retrieves an order with catalog-enriched items.
func (s *Service) GetOrder(ctx context.Context, requester auth.Identity, orderID string) (*queries.OrderDetails, error) {
	return s.getOrderHandler.Handle(ctx, queries.GetOrderQuery{Requester: requester, OrderID: orderID})
}

// ListOrders returns non-canceled orders for an owner.
func (s *Service) ListOrders(ctx context.Context, requester auth.Identity, email string, page, pageSize int) ([]queries.OrderDetails, error) {
	return s.listOrdersHandler.Handle(ctx, queries.ListOrdersQuery{
		Requester: requester,
		Email:     email,
		Page:      page,
		PageSize:  pageSize,
	})
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
