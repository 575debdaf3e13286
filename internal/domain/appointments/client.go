package appointments

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

// Client is the typed API client for the /appointments resource.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

func (c *Client) List(ctx context.Context, p listing.Params) ([]*Appointment, error) {
	var out []*Appointment
	if err := c.api.Get(ctx, "/appointments", p.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDoctor returns the appointments booked with one doctor.
func (c *Client) ListByDoctor(ctx context.Context, doctorID int, p listing.Params) ([]*Appointment, error) {
	var out []*Appointment
	if err := c.api.Get(ctx, fmt.Sprintf("/appointments/doctor/%d", doctorID), p.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByPatient returns the appointments booked for one patient.
func (c *Client) ListByPatient(ctx context.Context, patientID int, p listing.Params) ([]*Appointment, error) {
	var out []*Appointment
	if err := c.api.Get(ctx, fmt.Sprintf("/appointments/patient/%d", patientID), p.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int) (*Appointment, error) {
	var out Appointment
	if err := c.api.Get(ctx, fmt.Sprintf("/appointments/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, draft Draft) (*Appointment, error) {
	var out Appointment
	if err := c.api.Post(ctx, "/appointments", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int, draft Draft) (*Appointment, error) {
	var out Appointment
	if err := c.api.Put(ctx, fmt.Sprintf("/appointments/%d", id), draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.api.Delete(ctx, fmt.Sprintf("/appointments/%d", id))
}
