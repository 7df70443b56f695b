package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopkit/ordering/internal/orders/ports"
)

// Client talks to the user directory service over HTTP.
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

// FindUserByEmail resolves a user profile, including the default shipping
// address. Each call is bounded by the configured timeout; a timeout reads
// the same as the service being unreachable.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*ports.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s/users/email/%s", c.baseURL, url.PathEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrUserServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ports.ErrUserNotFound, email)
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrUserServiceUnavailable, resp.StatusCode)
	}

	var user ports.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user response: %w", err)
	}
	return &user, nil
}
