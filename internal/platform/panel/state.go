// Package panel holds the small pieces shared by all resource manager pages:
// the load state machine for a page's resource store and the form lifecycle
// modes.
package panel

// State is the load state of a page's resource store. A store starts Idle,
// moves to Loading when a list fetch is issued, and settles in Ready or
// Error. A successful mutation re-runs the same cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// FormMode describes what an open entity form is doing.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)
