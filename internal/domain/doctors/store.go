package doctors

import (
	"context"
	"sync"

	"github.com/clinicdesk/clinicdesk/internal/platform/panel"
	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

// Store is the page's in-memory cache of the doctor list. It is refreshed
// wholesale from the API on page load and after every successful mutation;
// no partial or optimistic updates happen.
type Store struct {
	client *Client

	mu     sync.RWMutex
	state  panel.State
	items  []*Doctor
	errMsg string
}

func NewStore(client *Client) *Store {
	return &Store{client: client, state: panel.StateIdle}
}

// Refresh re-fetches the full list. On failure the store moves to the Error
// state, keeping the surfaced message, and the previous items are dropped.
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

// Snapshot returns the current items, state, and error message. The returned
// slice must not be mutated by callers.
func (s *Store) Snapshot() ([]*Doctor, panel.State, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items, s.state, s.errMsg
}

// FindByID looks a doctor up in the loaded list without a network call.
func (s *Store) FindByID(id int) (*Doctor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.items {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}
