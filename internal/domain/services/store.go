package services

import (
	"context"
	"sync"

	"github.com/clinicdesk/clinicdesk/internal/platform/panel"
	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

// Store is the page's in-memory cache of the service list, refreshed
// wholesale from the API after every successful mutation.
type Store struct {
	client *Client

	mu     sync.RWMutex
	state  panel.State
	items  []*Service
	errMsg string
}

func NewStore(client *Client) *Store {
	return &Store{client: client, state: panel.StateIdle}
}

func (s *Store) Refresh(ctx context.Context, p listing.Params) error {
	s.mu.Lock()
	s.state = panel.StateLoading
	s.mu.Unlock()

	items, err := s.client.List(ctx, p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = panel.StateError
		s.items = nil
		s.errMsg = rest.Message(err)
		return err
	}
	s.state = panel.StateReady
	s.items = items
	s.errMsg = ""
	return nil
}

func (s *Store) Snapshot() ([]*Service, panel.State, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items, s.state, s.errMsg
}

func (s *Store) FindByID(id int) (*Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sv := range s.items {
		if sv.ID == id {
			return sv, true
		}
	}
	return nil, false
}
