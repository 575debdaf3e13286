package doctors

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

// Client is the typed API client for the /doctors resource.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

func (c *Client) List(ctx context.Context, p listing.Params) ([]*Doctor, error) {
	var out []*Doctor
	if err := c.api.Get(ctx, "/doctors", p.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int) (*Doctor, error) {
	var out Doctor
	if err := c.api.Get(ctx, fmt.Sprintf("/doctors/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, draft Draft) (*Doctor, error) {
	var out Doctor
	if err := c.api.Post(ctx, "/doctors", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int, draft Draft) (*Doctor, error) {
	var out Doctor
	if err := c.api.Put(ctx, fmt.Sprintf("/doctors/%d", id), draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.api.Delete(ctx, fmt.Sprintf("/doctors/%d", id))
}
