// Basic descent strategies: random descent and steepest descent.
package algo

import (
	"github.com/katalvlaran/descent/core"
	"github.com/katalvlaran/descent/search"
)

// RandomDescent samples one random move per step and accepts it iff it
// improves on the current solution. The search stops when a stop
// criterion fires; it does not detect local optima (a random move is
// almost always available).
type RandomDescent struct {
	*search.NeighbourhoodSearch
}

// NewRandomDescent creates a random descent over p stepping through n.
func NewRandomDescent(p core.Problem, n core.Neighbourhood, opts ...search.Option) (*RandomDescent, error) {
	rd := &RandomDescent{}
	ns, err := search.NewNeighbourhoodSearch("RandomDescent", p, n,
		func(*search.NeighbourhoodSearch) error { return rd.step() }, opts...)
	if err != nil {
		return nil, err
	}
	rd.NeighbourhoodSearch = ns

	return rd, nil
}

func (rd *RandomDescent) step() error {
	m := rd.Neighbourhood().RandomMove(rd.CurrentSolution(), rd.RNG())
	if m == nil {
		rd.Stop()

		return nil
	}
	improves, err := rd.IsImprovement(m)
	if err != nil {
		return err
	}
	if !improves {
		rd.Reject(m)

		return nil
	}
	_, err = rd.Accept(m)

	return err
}

// SteepestDescent enumerates the full neighbourhood every step and
// accepts the best improving move. When no improving move exists the
// current solution is a local optimum and the search stops itself.
type SteepestDescent struct {
	*search.NeighbourhoodSearch
}

// NewSteepestDescent creates a steepest descent over p stepping
// through n. Each step evaluates the whole neighbourhood once, and the
// evaluated-move cache is cleared whenever a move is accepted, so no
// cached evaluation carries over from one step to the next.
func NewSteepestDescent(p core.Problem, n core.Neighbourhood, opts ...search.Option) (*SteepestDescent, error) {
	sd := &SteepestDescent{}
	ns, err := search.NewNeighbourhoodSearch("SteepestDescent", p, n,
		func(*search.NeighbourhoodSearch) error { return sd.step() }, opts...)
	if err != nil {
		return nil, err
	}
	sd.NeighbourhoodSearch = ns

	return sd, nil
}

func (sd *SteepestDescent) step() error {
	moves := sd.Neighbourhood().AllMoves(sd.CurrentSolution())
	best, err := sd.BestMove(moves, true)
	if err != nil {
		return err
	}
	if best == nil {
		// local optimum
		sd.Stop()

		return nil
	}
	_, err = sd.Accept(best)

	return err
}
