package queries

import (
	"context"
	"fmt"

	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// OrderDetails is the read model returned to clients: the order plus its
// items enriched with current catalog display data.
type OrderDetails struct {
	domain.Order
	Items []ItemDetails `json:"items"`
}

// ItemDetails carries the persisted line plus display fields resolved from
// the catalog. Display fields are nil when the catalog no longer knows the
// product; the read never fails on that account.
type ItemDetails struct {
	domain.OrderItem
	ProductName  *string `json:"product_name"`
	ImagePath    *string `json:"image_path"`
	CategoryName *string `json:"category_name"`
}

// enrichOrders resolves display data for all items of all given orders with
// a single batch catalog call keyed by the distinct product ids.
func enrichOrders(ctx context.Context, catalog ports.CatalogClient, orders []domain.Order, itemsByOrder map[string][]domain.OrderItem) ([]OrderDetails, error) {
	seen := make(map[int64]struct{})
	var productIDs []int64
	for _, items := range itemsByOrder {
		for _, item := range items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			productIDs = append(productIDs, item.ProductID)
		}
	}

	productByID := make(map[int64]ports.Product)
	if len(productIDs) > 0 {
		products, err := catalog.GetProductsByIDs(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve product display data: %w", err)
		}
		for _, p := range products {
			productByID[p.ID] = p
		}
	}

	details := make([]OrderDetails, 0, len(orders))
	for _, order := range orders {
		items := itemsByOrder[order.ID]
		detailItems := make([]ItemDetails, 0, len(items))
		for _, item := range items {
			detail := ItemDetails{OrderItem: item}
			if product, ok := productByID[item.ProductID]; ok {
				detail.ProductName = &product.Name
				detail.ImagePath = &product.MainImagePath
				detail.CategoryName = &product.CategoryName
			}
			detailItems = append(detailItems, detail)
		}
		details = append(details, OrderDetails{Order: order, Items: detailItems})
	}
	return details, nil
}
