// LocalSearch: the Search base extended with a current solution and
// its evaluation and validation.
package search

import (
	"github.com/katalvlaran/descent/core"
)

// LocalSearch extends Search with a current solution. When a run
// starts without a current solution, one is drawn from the problem
// with the search's RNG. The current solution persists across runs.
type LocalSearch struct {
	*Search

	cur     core.Solution
	curEval core.Evaluation
	curVal  core.Validation
}

func newLocalSearch(name string, p core.Problem, cfg *config) *LocalSearch {
	ls := &LocalSearch{Search: newSearch(name, p, cfg)}
	ls.startHooks = append(ls.startHooks, ls.initCurrentSolution)

	return ls
}

// initCurrentSolution draws a random initial solution when none has
// been set yet.
func (s *LocalSearch) initCurrentSolution() error {
	s.mu.Lock()
	has := s.cur != nil
	s.mu.Unlock()
	if has {
		return nil
	}

	sol := s.problem.RandomSolution(s.rng)
	if sol == nil {
		return ErrNilSolution
	}
	e := s.problem.Evaluate(sol)
	v := s.problem.Validate(sol)
	s.adoptState(sol, e, v)
	s.UpdateBestSolution(sol, e, v)

	return nil
}

// SetCurrentSolution installs a deep copy of sol as the current
// solution, evaluates and validates it, and updates the best solution
// when it qualifies. The search must be idle.
func (s *LocalSearch) SetCurrentSolution(sol core.Solution) error {
	if sol == nil {
		return ErrNilSolution
	}
	s.mu.Lock()
	if s.status != StatusIdle {
		s.mu.Unlock()

		return ErrNotIdle
	}
	s.mu.Unlock()

	cp := sol.Copy()
	e := s.problem.Evaluate(cp)
	v := s.problem.Validate(cp)
	s.adoptState(cp, e, v)
	s.UpdateBestSolution(cp, e, v)

	return nil
}

// CurrentSolution returns the current solution, or nil before the
// first run. The returned solution is the search's working copy and
// must be treated as read-only.
func (s *LocalSearch) CurrentSolution() core.Solution {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cur
}

// CurrentEvaluation returns the evaluation of the current solution, or
// nil.
func (s *LocalSearch) CurrentEvaluation() core.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.curEval
}

// CurrentValidation returns the validation of the current solution, or
// nil.
func (s *LocalSearch) CurrentValidation() core.Validation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.curVal
}

// currentState snapshots the current solution with its evaluation and
// validation.
func (s *LocalSearch) currentState() (core.Solution, core.Evaluation, core.Validation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cur, s.curEval, s.curVal
}

// adoptState installs sol as the current solution without copying.
func (s *LocalSearch) adoptState(sol core.Solution, e core.Evaluation, v core.Validation) {
	s.mu.Lock()
	s.cur, s.curEval, s.curVal = sol, e, v
	s.mu.Unlock()
}
