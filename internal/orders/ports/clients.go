package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// User is the profile returned by the user directory service.
type User struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CartItem is one staged line in a user's cart.
type CartItem struct {
	CartItemID int64 `json:"cartItemId"`
	ProductID  int64 `json:"productId"`
	Quantity   int   `json:"quantity"`
}

// Product is the catalog view of a product: current price, stock, and the
// display fields used to enrich order reads.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	MainImagePath string          `json:"mainImagePath"`
	CategoryName  string          `json:"categoryName"`
}

// UserClient resolves user profiles from the user directory service.
type UserClient interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}

// CartClient reads and prunes the pre-order staging cart.
type CartClient interface {
	GetCart(ctx context.Context, email string) ([]CartItem, error)
	RemoveCartItems(ctx context.Context, email string, cartItemIDs []int64) error
}

// CatalogClient resolves product data and adjusts catalog stock.
type CatalogClient interface {
	GetProductsByIDs(ctx context.Context, productIDs []int64) ([]Product, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) error
	RestoreStock(ctx context.Context, productID int64, quantity int) error
}

var (
	// ErrUserNotFound is returned when the user directory has no such profile.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound is returned when the catalog has no such product.
	ErrProductNotFound = errors.New("product not found")
	// ErrCartUnavailable is returned when the cart service cannot be reached.
	ErrCartUnavailable = errors.New("cart service unavailable")
	// ErrCatalogUnavailable is returned when the catalog service cannot be reached.
	ErrCatalogUnavailable = errors.New("catalog service unavailable")
	// ErrUserServiceUnavailable is returned when the user directory cannot be reached.
	ErrUserServiceUnavailable = errors.New("user service unavailable")
)
