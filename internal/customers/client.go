package customers

import (
	"context"
	"fmt"

	"movieticket/internal/session"
	"movieticket/pkg/upstream"
)

// Client wraps the customer endpoints of the upstream API 1:1
type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Customer, error) {
	var customer Customer
	if err := c.api.Post(ctx, "/customers/register", nil, req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Login authenticates against the upstream API. The response payload is
// exactly the session projection the holder persists.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*session.Session, error) {
	var s session.Session
	if err := c.api.Post(ctx, "/customers/login", nil, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) List(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := c.api.Get(ctx, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	if err := c.api.Get(ctx, fmt.Sprintf("/customers/%d", id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Disable toggles the account off. The record itself is never deleted.
func (c *Client) Disable(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/customers/%d", id), nil)
}
