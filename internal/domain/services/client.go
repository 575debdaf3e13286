package services

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

// Client is the typed API client for the /services resource.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

func (c *Client) List(ctx context.Context, p listing.Params) ([]*Service, error) {
	var out []*Service
	if err := c.api.Get(ctx, "/services", p.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int) (*Service, error) {
	var out Service
	if err := c.api.Get(ctx, fmt.Sprintf("/services/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, draft Draft) (*Service, error) {
	var out Service
	if err := c.api.Post(ctx, "/services", draft.body(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int, draft Draft) (*Service, error) {
	var out Service
	if err := c.api.Put(ctx, fmt.Sprintf("/services/%d", id), draft.body(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.api.Delete(ctx, fmt.Sprintf("/services/%d", id))
}
