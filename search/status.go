// Search status values and the transition protocol.
package search

// Status is the lifecycle state of a search.
//
// Valid transitions:
//
//	Idle → Initializing → Running → Terminating → Idle   (repeatable)
//	Initializing → Terminating                            (stop during init)
//	Idle → Disposed                                       (final)
//
// Any other transition is rejected with ErrBadStatus.
type Status int

const (
	// StatusIdle means the search is not running and may be
	// (re)configured or started.
	StatusIdle Status = iota

	// StatusInitializing means the search is preparing a run; per-run
	// metadata getters return invalid sentinels.
	StatusInitializing

	// StatusRunning means the search is executing steps.
	StatusRunning

	// StatusTerminating means the search is winding a run down.
	StatusTerminating

	// StatusDisposed means the search has been disposed and can never
	// run again.
	StatusDisposed
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInitializing:
		return "initializing"
	case StatusRunning:
		return "running"
	case StatusTerminating:
		return "terminating"
	case StatusDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
