// Listener hooks: optional callbacks fired synchronously on the worker
// goroutine at well-defined points of a run.
package search

import "github.com/katalvlaran/descent/core"

// Listener bundles optional callbacks observing a search. Any field
// may be nil. Callbacks run synchronously on the search's worker
// goroutine, in registration order; a panic inside one callback is
// recovered and logged, and never disturbs the run or the other
// listeners.
//
// Ordering guarantees per run:
//
//   - Started fires before any StepCompleted
//   - StepCompleted fires with strictly increasing step counts
//   - NewBestSolution for step n fires before StepCompleted(n)
//   - Stopped fires after the final StepCompleted
type Listener struct {
	// Started fires when a run begins, before the first step.
	Started func(s *Search)

	// Stopped fires when a run has fully wound down.
	Stopped func(s *Search)

	// StepCompleted fires after every completed step with the number
	// of steps completed so far in this run.
	StepCompleted func(s *Search, steps int64)

	// NewBestSolution fires whenever the best solution improves. The
	// solution is the search's stored copy and must not be modified.
	NewBestSolution func(s *Search, sol core.Solution, e core.Evaluation, v core.Validation)

	// StatusChanged fires on every status transition.
	StatusChanged func(s *Search, status Status)
}

// AddListener registers l. The search must be idle.
func (s *Search) AddListener(l *Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return ErrNotIdle
	}
	s.listeners = append(s.listeners, l)

	return nil
}

// RemoveListener unregisters l, comparing by identity. It reports
// whether l was registered. The search must be idle.
func (s *Search) RemoveListener(l *Listener) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return false, ErrNotIdle
	}
	for i, reg := range s.listeners {
		if reg == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)

			return true, nil
		}
	}

	return false, nil
}

func (s *Search) listenerSnapshot() []*Listener {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*Listener(nil), s.listeners...)
}

// dispatch runs cb for one listener, isolating panics.
func (s *Search) dispatch(callback string, cb func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("search listener panicked",
				"search", s.name,
				"callback", callback,
				"recovered", r)
		}
	}()
	cb()
}

func (s *Search) fireStarted() {
	for _, l := range s.listenerSnapshot() {
		if l.Started != nil {
			s.dispatch("Started", func() { l.Started(s) })
		}
	}
}

func (s *Search) fireStopped() {
	for _, l := range s.listenerSnapshot() {
		if l.Stopped != nil {
			s.dispatch("Stopped", func() { l.Stopped(s) })
		}
	}
}

func (s *Search) fireStepCompleted(steps int64) {
	for _, l := range s.listenerSnapshot() {
		if l.StepCompleted != nil {
			s.dispatch("StepCompleted", func() { l.StepCompleted(s, steps) })
		}
	}
}

func (s *Search) fireNewBestSolution(sol core.Solution, e core.Evaluation, v core.Validation) {
	for _, l := range s.listenerSnapshot() {
		if l.NewBestSolution != nil {
			s.dispatch("NewBestSolution", func() { l.NewBestSolution(s, sol, e, v) })
		}
	}
}

func (s *Search) fireStatusChanged(status Status) {
	for _, l := range s.listenerSnapshot() {
		if l.StatusChanged != nil {
			s.dispatch("StatusChanged", func() { l.StatusChanged(s, status) })
		}
	}
}
