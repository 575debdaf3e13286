package appointments

import (
	"context"
	"sync"

	"github.com/clinicdesk/clinicdesk/internal/platform/panel"
	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
)

// FetchFunc loads one page of appointments. The page handlers pass a closure
// over the scoped list call, so the same store serves the full list and the
// per-doctor and per-patient views.
type FetchFunc func(ctx context.Context) ([]*Appointment, error)

// Store is the page's in-memory cache of the appointment list, refreshed
// wholesale from the API after every successful mutation.
type Store struct {
	mu     sync.RWMutex
	state  panel.State
	items  []*Appointment
	errMsg string
}

func NewStore() *Store {
	return &Store{state: panel.StateIdle}
}

func (s *Store) Refresh(ctx context.Context, fetch FetchFunc) error {
	s.mu.Lock()
	s.state = panel.StateLoading
	s.mu.Unlock()

	items, err := fetch(ctx)

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

func (s *Store) Snapshot() ([]*Appointment, panel.State, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items, s.state, s.errMsg
}

func (s *Store) FindByID(id int) (*Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}
