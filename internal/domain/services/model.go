package services

import (
	"fmt"
	"strconv"
	"strings"
)

// Service is a clinic service offering as returned by the API.
type Service struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsAvailable     bool    `json:"is_available"`
}

// Draft is the editable copy of a service's fields held by an open form. The
// price stays a string until validation so an invalid form value can
// round-trip back to the user unchanged.
type Draft struct {
	Name            string
	Description     string
	Price           string
	DurationMinutes int
	IsAvailable     bool
}

// payload is the JSON body sent on create and update.
type payload struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsAvailable     bool    `json:"is_available"`
}

// NewDraft returns the defaults for a blank service form.
func NewDraft() Draft {
	return Draft{DurationMinutes: 30, IsAvailable: true}
}

// DraftOf seeds a draft from an existing service for editing.
func DraftOf(s *Service) Draft {
	return Draft{
		Name:            s.Name,
		Description:     s.Description,
		Price:           strconv.FormatFloat(s.Price, 'f', 2, 64),
		DurationMinutes: s.DurationMinutes,
		IsAvailable:     s.IsAvailable,
	}
}

// Validate checks the draft before any API call is issued.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if _, err := d.price(); err != nil {
		return err
	}
	if d.DurationMinutes < 15 {
		return fmt.Errorf("duration must be at least 15 minutes")
	}
	if d.DurationMinutes%15 != 0 {
		return fmt.Errorf("duration must be a multiple of 15 minutes")
	}
	return nil
}

// price parses and checks the price field: non-negative, at most two decimal
// places.
func (d Draft) price() (float64, error) {
	s := strings.TrimSpace(d.Price)
	if s == "" {
		return 0, fmt.Errorf("price is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("price must not be negative")
	}
	if _, frac, ok := strings.Cut(s, "."); ok && len(frac) > 2 {
		return 0, fmt.Errorf("price must have at most two decimal places")
	}
	return v, nil
}

// body converts a validated draft into the API payload.
func (d Draft) body() payload {
	v, _ := d.price()
	return payload{
		Name:            d.Name,
		Description:     d.Description,
		Price:           v,
		DurationMinutes: d.DurationMinutes,
		IsAvailable:     d.IsAvailable,
	}
}
