package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopkit/ordering/internal/orders/ports"
)

// Client talks to the cart service over HTTP.
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

// GetCart returns all staged lines for the given user.
func (c *Client) GetCart(ctx context.Context, email string) ([]ports.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s/carts/%s", c.baseURL, url.PathEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCartUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrCartUnavailable, resp.StatusCode)
	}

	var items []ports.CartItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode cart response: %w", err)
	}
	return items, nil
}

// RemoveCartItems deletes the consumed lines from the user's cart.
func (c *Client) RemoveCartItems(ctx context.Context, email string, cartItemIDs []int64) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string][]int64{"cartItemIds": cartItemIDs})
	if err != nil {
		return fmt.Errorf("encode cart removal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/carts/%s/items", c.baseURL, url.PathEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrCartUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: unexpected status %d", ports.ErrCartUnavailable, resp.StatusCode)
	}
	return nil
}
