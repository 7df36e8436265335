// NeighbourhoodSearch: LocalSearch extended with a neighbourhood, an
// evaluated-move cache and the move primitives every neighbourhood
// strategy builds on.
package search

import (
	"fmt"

	"github.com/katalvlaran/descent/core"
)

// StepFunc performs one step of a neighbourhood search. It is supplied
// at construction time and invoked repeatedly by the run loop; calling
// Stop from inside a step ends the run after the step completes.
type StepFunc func(ns *NeighbourhoodSearch) error

// NeighbourhoodSearch extends LocalSearch with a neighbourhood, an
// evaluated-move cache (a SingleEntryCache unless configured
// otherwise) and per-run counters of accepted and rejected moves.
//
// The move primitives (EvaluateMove, ValidateMove, IsImprovement,
// BestMove, Accept, Reject) are the building blocks of concrete
// strategies; they transparently use the cache, which is cleared on
// every change of the current solution.
type NeighbourhoodSearch struct {
	*LocalSearch

	neigh core.Neighbourhood
	cache EvaluatedMoveCache

	numAccepted int64
	numRejected int64
}

// NewNeighbourhoodSearch creates a search stepping with step over the
// moves of n applied to p.
func NewNeighbourhoodSearch(name string, p core.Problem, n core.Neighbourhood, step StepFunc, opts ...Option) (*NeighbourhoodSearch, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if n == nil {
		return nil, ErrNilNeighbourhood
	}
	if step == nil {
		return nil, fmt.Errorf("%w: nil step function", ErrOptionViolation)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	ns := &NeighbourhoodSearch{
		LocalSearch: newLocalSearch(name, p, &cfg),
		neigh:       n,
		cache:       NewSingleEntryCache(),
	}
	if cfg.cacheSet {
		ns.cache = cfg.cache
	}

	base := ns.Search
	base.step = func() error { return step(ns) }
	base.startHooks = append(base.startHooks, ns.resetMoveCounters)
	base.startHooks = append(base.startHooks, cfg.startHooks...)
	base.stopHooks = append(base.stopHooks, cfg.stopHooks...)

	return ns, nil
}

func (s *NeighbourhoodSearch) resetMoveCounters() error {
	s.mu.Lock()
	s.numAccepted, s.numRejected = 0, 0
	s.mu.Unlock()
	if s.cache != nil {
		s.cache.Clear()
	}

	return nil
}

// Neighbourhood returns the neighbourhood generating this search's
// moves.
func (s *NeighbourhoodSearch) Neighbourhood() core.Neighbourhood {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.neigh
}

// SetNeighbourhood replaces the neighbourhood. The search must be
// idle.
func (s *NeighbourhoodSearch) SetNeighbourhood(n core.Neighbourhood) error {
	if n == nil {
		return ErrNilNeighbourhood
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return ErrNotIdle
	}
	s.neigh = n

	return nil
}

// EvaluatedMoveCache returns the cache, which may be nil when caching
// is disabled.
func (s *NeighbourhoodSearch) EvaluatedMoveCache() EvaluatedMoveCache {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache
}

// SetEvaluatedMoveCache replaces the cache; nil disables caching. The
// search must be idle.
func (s *NeighbourhoodSearch) SetEvaluatedMoveCache(cache EvaluatedMoveCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return ErrNotIdle
	}
	s.cache = cache

	return nil
}

// NumAcceptedMoves returns the number of moves accepted during the
// current (or last) run, or InvalidMoveCount while initializing.
func (s *NeighbourhoodSearch) NumAcceptedMoves() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInitializing {
		return InvalidMoveCount
	}

	return s.numAccepted
}

// NumRejectedMoves returns the number of moves rejected during the
// current (or last) run, or InvalidMoveCount while initializing.
func (s *NeighbourhoodSearch) NumRejectedMoves() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInitializing {
		return InvalidMoveCount
	}

	return s.numRejected
}

// IncNumAcceptedMoves adds n accepted moves to the counter. Strategies
// that delegate steps to sub-searches use this to fold the
// sub-searches' counters into their own.
func (s *NeighbourhoodSearch) IncNumAcceptedMoves(n int64) {
	s.mu.Lock()
	s.numAccepted += n
	s.mu.Unlock()
}

// IncNumRejectedMoves adds n rejected moves to the counter.
func (s *NeighbourhoodSearch) IncNumRejectedMoves(n int64) {
	s.mu.Lock()
	s.numRejected += n
	s.mu.Unlock()
}

// EvaluateMove computes (or recalls from the cache) the evaluation of
// the neighbour obtained by applying m to the current solution.
func (s *NeighbourhoodSearch) EvaluateMove(m core.Move) (core.Evaluation, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil move", ErrSearch)
	}
	if s.cache != nil {
		if e, ok := s.cache.Evaluation(m); ok {
			return e, nil
		}
	}
	cur, curEval, _ := s.currentState()
	e, err := s.problem.EvaluateMove(m, cur, curEval)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.CacheEvaluation(m, e)
	}

	return e, nil
}

// ValidateMove computes (or recalls from the cache) the validation of
// the neighbour obtained by applying m to the current solution.
func (s *NeighbourhoodSearch) ValidateMove(m core.Move) (core.Validation, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil move", ErrSearch)
	}
	if s.cache != nil {
		if v, ok := s.cache.Validation(m); ok {
			return v, nil
		}
	}
	cur, _, curVal := s.currentState()
	v, err := s.problem.ValidateMove(m, cur, curVal)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.CacheValidation(m, v)
	}

	return v, nil
}

// IsImprovement reports whether m yields a valid neighbour that
// improves on the current solution. Any valid neighbour improves on an
// invalid current solution.
func (s *NeighbourhoodSearch) IsImprovement(m core.Move) (bool, error) {
	if m == nil {
		return false, nil
	}
	v, err := s.ValidateMove(m)
	if err != nil {
		return false, err
	}
	if !v.Passed() {
		return false, nil
	}
	_, curEval, curVal := s.currentState()
	if curVal != nil && !curVal.Passed() {
		return true, nil
	}
	e, err := s.EvaluateMove(m)
	if err != nil {
		return false, err
	}

	return core.Delta(e, curEval, s.problem.Minimizing()) > 0, nil
}

// BestMove returns the valid move with the largest improvement among
// moves, or nil if none qualifies. Moves rejected by any filter are
// skipped. With requireImprovement the move must improve on the
// current solution (any valid move qualifies when the current solution
// is invalid); otherwise the least-worsening valid move is returned.
// Ties keep the first move seen. The winner's evaluation and
// validation are re-cached before returning.
func (s *NeighbourhoodSearch) BestMove(moves []core.Move, requireImprovement bool, filters ...func(core.Move) bool) (core.Move, error) {
	_, curEval, curVal := s.currentState()
	curInvalid := curVal != nil && !curVal.Passed()

	var (
		best      core.Move
		bestDelta float64
		bestEval  core.Evaluation
		bestVal   core.Validation
	)
moves:
	for _, m := range moves {
		if m == nil {
			continue
		}
		for _, filter := range filters {
			if !filter(m) {
				continue moves
			}
		}
		v, err := s.ValidateMove(m)
		if err != nil {
			return nil, err
		}
		if !v.Passed() {
			continue
		}
		e, err := s.EvaluateMove(m)
		if err != nil {
			return nil, err
		}
		delta := core.Delta(e, curEval, s.problem.Minimizing())
		if requireImprovement && delta <= 0 && !curInvalid {
			continue
		}
		if best == nil || delta > bestDelta {
			best, bestDelta, bestEval, bestVal = m, delta, e, v
		}
	}

	if best != nil && s.cache != nil {
		s.cache.CacheEvaluation(best, bestEval)
		s.cache.CacheValidation(best, bestVal)
	}

	return best, nil
}

// Accept applies m to the current solution when its neighbour is
// valid: the neighbour is evaluated before the move is applied, the
// current (and possibly best) solution is updated, the cache is
// cleared and the accepted-move counter incremented. It reports
// whether the move was accepted; an invalid neighbour is not an error.
func (s *NeighbourhoodSearch) Accept(m core.Move) (bool, error) {
	v, err := s.ValidateMove(m)
	if err != nil {
		return false, err
	}
	if !v.Passed() {
		return false, nil
	}
	e, err := s.EvaluateMove(m)
	if err != nil {
		return false, err
	}

	cur, _, _ := s.currentState()
	if err = m.Apply(cur); err != nil {
		return false, err
	}
	s.adoptState(cur, e, v)
	s.UpdateBestSolution(cur, e, v)
	s.mu.Lock()
	s.numAccepted++
	s.mu.Unlock()

	return true, nil
}

// Reject discards m, incrementing the rejected-move counter.
func (s *NeighbourhoodSearch) Reject(core.Move) {
	s.mu.Lock()
	s.numRejected++
	s.mu.Unlock()
}

// UpdateCurrentAndBestSolution installs sol (without copying) as the
// current solution and updates the best solution when it qualifies.
func (s *NeighbourhoodSearch) UpdateCurrentAndBestSolution(sol core.Solution, e core.Evaluation, v core.Validation) {
	s.adoptState(sol, e, v)
	s.UpdateBestSolution(sol, e, v)
}

// SetCurrentSolution installs a deep copy of sol as the current
// solution and clears the cache. The search must be idle.
func (s *NeighbourhoodSearch) SetCurrentSolution(sol core.Solution) error {
	if err := s.LocalSearch.SetCurrentSolution(sol); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Clear()
	}

	return nil
}

// adoptState installs the state and clears the cache.
func (s *NeighbourhoodSearch) adoptState(sol core.Solution, e core.Evaluation, v core.Validation) {
	s.LocalSearch.adoptState(sol, e, v)
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Dispose retires an idle search and releases the cache contents.
func (s *NeighbourhoodSearch) Dispose() error {
	if err := s.Search.Dispose(); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Clear()
	}

	return nil
}
