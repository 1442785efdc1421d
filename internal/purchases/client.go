package purchases

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"movieticket/pkg/upstream"
)

// Client wraps the purchase endpoints of the upstream API 1:1
type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

// Create submits a purchase. The buyer travels as the customerId query
// parameter, the rest in the body.
func (c *Client) Create(ctx context.Context, customerID int64, body CreateTicketPurchase) (*TicketPurchase, error) {
	query := url.Values{}
	query.Set("customerId", strconv.FormatInt(customerID, 10))

	var purchase TicketPurchase
	if err := c.api.Post(ctx, "/purchases", query, body, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*TicketPurchase, error) {
	var purchase TicketPurchase
	if err := c.api.Get(ctx, fmt.Sprintf("/purchases/%d", id), nil, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (c *Client) ListByCustomer(ctx context.Context, customerID int64) ([]TicketPurchase, error) {
	var purchases []TicketPurchase
	if err := c.api.Get(ctx, fmt.Sprintf("/purchases/customer/%d", customerID), nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (c *Client) ListByMovie(ctx context.Context, movieID int64) ([]TicketPurchase, error) {
	var purchases []TicketPurchase
	if err := c.api.Get(ctx, fmt.Sprintf("/purchases/movie/%d", movieID), nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// Cancel moves a purchase to CANCELLED upstream. Only confirmed purchases
// can be cancelled; the upstream enforces that and its message is
// surfaced unchanged.
func (c *Client) Cancel(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/purchases/%d", id), nil)
}
