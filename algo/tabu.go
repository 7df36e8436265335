// Tabu search with a recency-based tabu memory and aspiration.
package algo

import (
	"fmt"

	"github.com/katalvlaran/descent/core"
	"github.com/katalvlaran/descent/search"
)

// TabuMemory remembers recently visited moves so that a tabu search
// does not immediately revisit them.
type TabuMemory interface {
	// IsTabu reports whether m is currently forbidden.
	IsTabu(m core.Move) bool

	// Register records that m was just accepted.
	Register(m core.Move)

	// Clear forgets everything.
	Clear()
}

// RecencyTabuMemory forbids the most recently accepted moves, identified
// by their hash, through a fixed-size ring buffer. Once the buffer is
// full the oldest entry expires with every registration.
type RecencyTabuMemory struct {
	ring []uint64
	used []bool
	next int
}

// NewRecencyTabuMemory creates a memory remembering the last tenure
// accepted moves. Returns ErrOptionViolation for a non-positive
// tenure.
func NewRecencyTabuMemory(tenure int) (*RecencyTabuMemory, error) {
	if tenure <= 0 {
		return nil, fmt.Errorf("%w: non-positive tabu tenure %d", ErrOptionViolation, tenure)
	}

	return &RecencyTabuMemory{ring: make([]uint64, tenure), used: make([]bool, tenure)}, nil
}

// IsTabu reports whether a move with m's hash was registered within
// the last tenure registrations.
func (t *RecencyTabuMemory) IsTabu(m core.Move) bool {
	h := m.Hash()
	for i, u := range t.used {
		if u && t.ring[i] == h {
			return true
		}
	}

	return false
}

// Register records m, expiring the oldest entry when the buffer is
// full.
func (t *RecencyTabuMemory) Register(m core.Move) {
	t.ring[t.next] = m.Hash()
	t.used[t.next] = true
	t.next = (t.next + 1) % len(t.ring)
}

// Clear forgets all registered moves.
func (t *RecencyTabuMemory) Clear() {
	for i := range t.used {
		t.used[i] = false
	}
	t.next = 0
}

// TabuSearch enumerates the full neighbourhood every step and accepts
// the best valid non-tabu move, improving or not; escaping local
// optima is the point. Aspiration overrides the memory: a move that
// would improve on the best solution found so far is never tabu. When
// every move is tabu and none aspires, the search stops itself.
type TabuSearch struct {
	*search.NeighbourhoodSearch

	memory TabuMemory
}

// NewTabuSearch creates a tabu search over p stepping through n with
// the given memory. Returns ErrOptionViolation for a nil memory.
func NewTabuSearch(p core.Problem, n core.Neighbourhood, memory TabuMemory, opts ...search.Option) (*TabuSearch, error) {
	if memory == nil {
		return nil, fmt.Errorf("%w: nil tabu memory", ErrOptionViolation)
	}
	ts := &TabuSearch{memory: memory}
	combined := append([]search.Option{
		search.WithRunStartedHook(func() error {
			memory.Clear()

			return nil
		}),
	}, opts...)
	ns, err := search.NewNeighbourhoodSearch("TabuSearch", p, n,
		func(*search.NeighbourhoodSearch) error { return ts.step() }, combined...)
	if err != nil {
		return nil, err
	}
	ts.NeighbourhoodSearch = ns

	return ts, nil
}

// TabuMemory returns the memory in use.
func (ts *TabuSearch) TabuMemory() TabuMemory { return ts.memory }

func (ts *TabuSearch) step() error {
	moves := ts.Neighbourhood().AllMoves(ts.CurrentSolution())
	admissible := func(m core.Move) bool {
		if !ts.memory.IsTabu(m) {
			return true
		}

		return ts.aspires(m)
	}
	best, err := ts.BestMove(moves, false, admissible)
	if err != nil {
		return err
	}
	if best == nil {
		ts.Stop()

		return nil
	}
	ts.memory.Register(best)
	_, err = ts.Accept(best)

	return err
}

// aspires reports whether m would improve on the best solution found
// so far, which overrides its tabu status.
func (ts *TabuSearch) aspires(m core.Move) bool {
	v, err := ts.ValidateMove(m)
	if err != nil || !v.Passed() {
		return false
	}
	bestEval := ts.BestEvaluation()
	if bestEval == nil {
		return true
	}
	e, err := ts.EvaluateMove(m)
	if err != nil {
		return false
	}

	return core.Delta(e, bestEval, ts.Problem().Minimizing()) > 0
}
