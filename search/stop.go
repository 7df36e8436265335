// Stop criteria and the background checker goroutine that polls them.
package search

import (
	"fmt"
	"time"
)

// DefaultStopCriterionCheckPeriod is the default interval at which the
// checker goroutine polls the registered stop criteria.
const DefaultStopCriterionCheckPeriod = 50 * time.Millisecond

// StopCriterion decides whether a running search should stop, based on
// the search's read-only per-run metadata. Criteria must tolerate the
// invalid sentinels returned while the search is initializing.
type StopCriterion interface {
	// ShouldStop reports whether the search has satisfied this
	// criterion.
	ShouldStop(s *Search) bool
}

// AddStopCriterion registers a criterion. The search must be idle.
func (s *Search) AddStopCriterion(c StopCriterion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return ErrNotIdle
	}
	s.criteria = append(s.criteria, c)

	return nil
}

// ClearStopCriteria removes all registered criteria. The search must
// be idle.
func (s *Search) ClearStopCriteria() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return ErrNotIdle
	}
	s.criteria = nil

	return nil
}

// SetStopCriterionCheckPeriod sets the checker poll interval. The
// period must be positive and the search idle.
func (s *Search) SetStopCriterionCheckPeriod(period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("%w: non-positive check period %v", ErrOptionViolation, period)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return ErrNotIdle
	}
	s.checkPeriod = period

	return nil
}

func (s *Search) criteriaSnapshot() []StopCriterion {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]StopCriterion(nil), s.criteria...)
}

// startChecker spawns the checker goroutine and returns a join
// function that stops it and waits for it to exit.
func (s *Search) startChecker() (join func()) {
	quit := make(chan struct{})
	done := make(chan struct{})
	s.mu.Lock()
	period := s.checkPeriod
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				for _, c := range s.criteriaSnapshot() {
					if c.ShouldStop(s) {
						s.logger.Debug("stop criterion satisfied",
							"search", s.name, "criterion", fmt.Sprintf("%T", c))
						s.Stop()

						return
					}
				}
			}
		}
	}()

	return func() {
		close(quit)
		<-done
	}
}

// maxRuntime stops a search after a fixed wall-clock runtime.
type maxRuntime struct {
	max time.Duration
}

// NewMaxRuntime creates a criterion stopping the search once its
// runtime reaches max. Returns ErrOptionViolation for non-positive max.
func NewMaxRuntime(max time.Duration) (StopCriterion, error) {
	if max <= 0 {
		return nil, fmt.Errorf("%w: non-positive runtime %v", ErrOptionViolation, max)
	}

	return maxRuntime{max: max}, nil
}

func (c maxRuntime) ShouldStop(s *Search) bool {
	rt := s.Runtime()

	return rt != InvalidTimeSpan && rt >= c.max
}

// maxSteps stops a search after a fixed number of steps.
type maxSteps struct {
	max int64
}

// NewMaxSteps creates a criterion stopping the search once it has
// completed max steps. Returns ErrOptionViolation for non-positive max.
func NewMaxSteps(max int64) (StopCriterion, error) {
	if max <= 0 {
		return nil, fmt.Errorf("%w: non-positive step count %d", ErrOptionViolation, max)
	}

	return maxSteps{max: max}, nil
}

func (c maxSteps) ShouldStop(s *Search) bool {
	steps := s.Steps()

	return steps != InvalidStepCount && steps >= c.max
}

// maxStepsWithoutImprovement stops a search once the best solution has
// not improved for a fixed number of steps.
type maxStepsWithoutImprovement struct {
	max int64
}

// NewMaxStepsWithoutImprovement creates the criterion. Returns
// ErrOptionViolation for non-positive max.
func NewMaxStepsWithoutImprovement(max int64) (StopCriterion, error) {
	if max <= 0 {
		return nil, fmt.Errorf("%w: non-positive step count %d", ErrOptionViolation, max)
	}

	return maxStepsWithoutImprovement{max: max}, nil
}

func (c maxStepsWithoutImprovement) ShouldStop(s *Search) bool {
	steps := s.StepsWithoutImprovement()

	return steps != InvalidStepCount && steps >= c.max
}

// maxTimeWithoutImprovement stops a search once the best solution has
// not improved for a fixed duration.
type maxTimeWithoutImprovement struct {
	max time.Duration
}

// NewMaxTimeWithoutImprovement creates the criterion. Returns
// ErrOptionViolation for non-positive max.
func NewMaxTimeWithoutImprovement(max time.Duration) (StopCriterion, error) {
	if max <= 0 {
		return nil, fmt.Errorf("%w: non-positive duration %v", ErrOptionViolation, max)
	}

	return maxTimeWithoutImprovement{max: max}, nil
}

func (c maxTimeWithoutImprovement) ShouldStop(s *Search) bool {
	t := s.TimeWithoutImprovement()

	return t != InvalidTimeSpan && t >= c.max
}

// minDelta stops a search once the smallest observed improvement drops
// below a threshold.
type minDelta struct {
	min float64
}

// NewMinDelta creates the criterion. Returns ErrOptionViolation for a
// non-positive threshold.
func NewMinDelta(min float64) (StopCriterion, error) {
	if min <= 0 {
		return nil, fmt.Errorf("%w: non-positive minimum delta %g", ErrOptionViolation, min)
	}

	return minDelta{min: min}, nil
}

func (c minDelta) ShouldStop(s *Search) bool {
	d := s.MinDelta()

	return d != InvalidDelta && d < c.min
}
