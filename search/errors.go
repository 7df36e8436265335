// Sentinel errors and invalid-value sentinels of the search engine.
//
// Errors:
//
//	ErrBadStatus       - an operation is not allowed in the current search status.
//	ErrNotIdle         - a configuration mutator was called on a non-idle search.
//	ErrInterrupted     - the run was cut short by context cancellation.
//	ErrSearch          - a step failed for a reason internal to the search.
//	ErrNilProblem      - no problem was supplied.
//	ErrNilNeighbourhood- no neighbourhood was supplied.
//	ErrNilSolution     - a nil solution was supplied.
//	ErrOptionViolation - an invalid option or criterion parameter was supplied.
package search

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the search engine.
var (
	// ErrBadStatus indicates an operation that is not allowed in the
	// current search status.
	ErrBadStatus = errors.New("search: operation not allowed in current status")

	// ErrNotIdle indicates a configuration mutator called while the
	// search was not idle. It wraps ErrBadStatus.
	ErrNotIdle = fmt.Errorf("%w: search not idle", ErrBadStatus)

	// ErrInterrupted indicates that a run was cut short by context
	// cancellation.
	ErrInterrupted = errors.New("search: run interrupted")

	// ErrSearch indicates a failure internal to a search step.
	ErrSearch = errors.New("search: step failed")

	// ErrNilProblem indicates that no problem was supplied.
	ErrNilProblem = errors.New("search: nil problem")

	// ErrNilNeighbourhood indicates that no neighbourhood was supplied.
	ErrNilNeighbourhood = errors.New("search: nil neighbourhood")

	// ErrNilSolution indicates that a nil solution was supplied.
	ErrNilSolution = errors.New("search: nil solution")

	// ErrOptionViolation is returned when an invalid option or
	// criterion parameter is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)

// Invalid-value sentinels returned by the per-run metadata getters
// while the search is initializing (or, for time spans, before the
// first run).
const (
	// InvalidStepCount is returned by step counters with no valid value.
	InvalidStepCount int64 = -1

	// InvalidMoveCount is returned by move counters with no valid value.
	InvalidMoveCount int64 = -1

	// InvalidDelta is returned by MinDelta when no improvement has been
	// observed.
	InvalidDelta float64 = -1

	// InvalidTimeSpan is returned by duration getters with no valid value.
	InvalidTimeSpan time.Duration = -1
)
