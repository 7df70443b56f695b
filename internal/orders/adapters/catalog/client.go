package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopkit/ordering/internal/orders/ports"
)

// Client talks to the product catalog service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

// GetProductsByIDs batch-resolves products. Products unknown to the catalog
// are simply absent from the response; callers decide whether that is fatal.
func (c *Client) GetProductsByIDs(ctx context.Context, productIDs []int64) ([]ports.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string][]int64{"productIds": productIDs})
	if err != nil {
		return nil, fmt.Errorf("encode product batch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products/batch", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrCatalogUnavailable, resp.StatusCode)
	}

	var products []ports.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode product batch response: %w", err)
	}
	return products, nil
}

// DecrementStock subtracts the ordered quantity from a product's stock.
func (c *Client) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	return c.adjustStock(ctx, productID, -quantity)
}

// RestoreStock adds a canceled quantity back to a product's stock.
func (c *Client) RestoreStock(ctx context.Context, productID int64, quantity int) error {
	return c.adjustStock(ctx, productID, quantity)
}

func (c *Client) adjustStock(ctx context.Context, productID int64, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]int{"delta": delta})
	if err != nil {
		return fmt.Errorf("encode stock adjustment: %w", err)
	}

	reqURL := fmt.Sprintf("%s/products/%d/stock", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: id %d", ports.ErrProductNotFound, productID)
	default:
		return fmt.Errorf("%w: unexpected status %d", ports.ErrCatalogUnavailable, resp.StatusCode)
	}
}
