// Package listing holds the skip/limit window used when fetching resource
// lists from the clinic API, and helpers for paging through results on the
// panel's list pages.
package listing

import (
	"net/url"
	"strconv"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 100

	// MaxLimit is the largest page the clinic API accepts.
	MaxLimit = 100
)

// Params holds the list window passed to the clinic API.
type Params struct {
	Skip  int
	Limit int
}

// Default returns the window the API assumes when none is given.
func Default() Params {
	return Params{Skip: DefaultSkip, Limit: DefaultLimit}
}

// WithLimit returns the default window with a configured page size.
// Non-positive or oversized values fall back to the defaults.
func WithLimit(limit int) Params {
	if limit <= 0 || limit > MaxLimit {
		return Default()
	}
	return Params{Skip: DefaultSkip, Limit: limit}
}

// FromQuery extracts skip/limit from page query parameters. Absent or
// invalid values fall back to defaultLimit (the configured page size; pass 0
// for the built-in default).
func FromQuery(values url.Values, defaultLimit int) Params {
	p := WithLimit(defaultLimit)

	if s, err := strconv.Atoi(values.Get("skip")); err == nil && s >= 0 {
		p.Skip = s
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		if l > MaxLimit {
			l = MaxLimit
		}
		p.Limit = l
	}
	return p
}

// Query encodes the window as API query parameters.
func (p Params) Query() url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(p.Skip))
	q.Set("limit", strconv.Itoa(p.Limit))
	return q
}

// HasMore reports whether another page may exist. The API does not return a
// total count, so a full page is treated as "possibly more".
func (p Params) HasMore(returned int) bool {
	return returned == p.Limit
}

// NextSkip returns the skip value for the next page.
func (p Params) NextSkip() int {
	return p.Skip + p.Limit
}

// PrevSkip returns the skip value for the previous page, clamped at zero.
func (p Params) PrevSkip() int {
	s := p.Skip - p.Limit
	if s < 0 {
		s = 0
	}
	return s
}

// HasPrev reports whether a previous page exists.
func (p Params) HasPrev() bool {
	return p.Skip > 0
}
