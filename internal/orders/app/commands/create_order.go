package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopkit/ordering/internal/auth"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// CreateOrderCommand carries the caller's cart selection. The shipping
// address defaults to the user's profile address unless overridden.
type CreateOrderCommand struct {
	Requester       auth.Identity
	CartItemIDs     []int64
	AddressOverride string
}

func (c CreateOrderCommand) Validate() error {
	if strings.TrimSpace(c.Requester.Email) == "" {
		return errors.New("requester email is required")
	}
	if len(c.CartItemIDs) == 0 {
		return fmt.Errorf("%w: cart_item_ids is empty", ErrEmptySelection)
	}
	return nil
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

// CreateOrderCommandHandler orchestrates the full creation workflow:
// profile -> cart -> catalog prices -> persist -> cart cleanup -> stock
// decrement -> confirm.
type CreateOrderCommandHandler struct {
	repo    ports.OrderRepository
	users   ports.UserClient
	cart    ports.CartClient
	catalog ports.CatalogClient
	events  ports.EventBus
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	users ports.UserClient,
	cart ports.CartClient,
	catalog ports.CatalogClient,
	events ports.EventBus,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo:    repo,
		users:   users,
		cart:    cart,
		catalog: catalog,
		events:  events,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := h.users.FindUserByEmail(ctx, cmd.Requester.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve user profile: %w", err)
	}

	cartItems, err := h.cart.GetCart(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}

	selected := filterCartItems(cartItems, cmd.CartItemIDs)
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: none of the requested ids are in the cart", ErrEmptySelection)
	}

	products, err := h.catalog.GetProductsByIDs(ctx, distinctProductIDs(selected))
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	productByID := make(map[int64]ports.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	// Unit prices are snapshotted here. Later catalog price changes must not
	// alter a placed order's total.
	items := make([]domain.OrderItem, 0, len(selected))
	for _, line := range selected {
		product, ok := productByID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ports.ErrProductNotFound, line.ProductID)
		}
		items = append(items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
	}

	address := strings.TrimSpace(cmd.AddressOverride)
	if address == "" {
		address = user.Address
	}

	order, items, err := domain.NewOrder(uuid.NewString(), user.ID, user.Email, address, items, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := h.repo.CreateOrder(ctx, order, items); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// Best-effort: the order is already committed. A cart that keeps the
	// consumed lines is an accepted inconsistency, not a rollback trigger.
	if err := h.cart.RemoveCartItems(ctx, user.Email, cmd.CartItemIDs); err != nil {
		slog.WarnContext(ctx, "failed to remove ordered items from cart",
			"order_id", order.ID,
			"email", user.Email,
			"error", err,
		)
	}

	for _, line := range selected {
		if err := h.catalog.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			// The order row exists and stays PENDING; a recovery job or
			// manual intervention picks it up.
			return nil, fmt.Errorf("%w: product %d: %v", ErrStockUpdateFailed, line.ProductID, err)
		}
	}

	if err := h.repo.SetOrderAndItemsStatus(ctx, order.ID, domain.StatusOrdered); err != nil {
		return nil, fmt.Errorf("confirm order: %w", err)
	}
	order.Status = domain.StatusOrdered
	order.UpdatedAt = time.Now().UTC()

	if err := h.events.PublishOrderCreated(ctx, order.ID); err != nil {
		slog.WarnContext(ctx, "failed to publish order created event", "order_id", order.ID, "error", err)
	}

	return &order, nil
}

func filterCartItems(cartItems []ports.CartItem, ids []int64) []ports.CartItem {
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var selected []ports.CartItem
	for _, item := range cartItems {
		if _, ok := wanted[item.CartItemID]; ok {
			selected = append(selected, item)
		}
	}
	return selected
}

func distinctProductIDs(items []ports.CartItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	var ids []int64
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
