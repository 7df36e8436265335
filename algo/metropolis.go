// Metropolis: fixed-temperature simulated annealing.
package algo

import (
	"fmt"
	"math"

	"github.com/katalvlaran/descent/core"
	"github.com/katalvlaran/descent/search"
)

// Metropolis samples one random move per step and applies the
// Metropolis criterion at a fixed temperature T: a non-worsening valid
// move is always accepted, a worsening one with probability
// exp(delta/T), where delta is the signed improvement (negative for a
// worsening move). Higher temperatures accept worse moves more often.
type Metropolis struct {
	*search.NeighbourhoodSearch

	temperature float64
}

// NewMetropolis creates a Metropolis search over p stepping through n
// at the given temperature. Returns ErrOptionViolation for a
// non-positive temperature.
func NewMetropolis(p core.Problem, n core.Neighbourhood, temperature float64, opts ...search.Option) (*Metropolis, error) {
	if temperature <= 0 {
		return nil, fmt.Errorf("%w: non-positive temperature %g", ErrOptionViolation, temperature)
	}
	mp := &Metropolis{temperature: temperature}
	ns, err := search.NewNeighbourhoodSearch("Metropolis", p, n,
		func(*search.NeighbourhoodSearch) error { return mp.step() }, opts...)
	if err != nil {
		return nil, err
	}
	mp.NeighbourhoodSearch = ns

	return mp, nil
}

// Temperature returns the fixed temperature of this search.
func (mp *Metropolis) Temperature() float64 { return mp.temperature }

func (mp *Metropolis) step() error {
	m := mp.Neighbourhood().RandomMove(mp.CurrentSolution(), mp.RNG())
	if m == nil {
		mp.Stop()

		return nil
	}
	v, err := mp.ValidateMove(m)
	if err != nil {
		return err
	}
	if !v.Passed() {
		mp.Reject(m)

		return nil
	}
	e, err := mp.EvaluateMove(m)
	if err != nil {
		return err
	}
	delta := core.Delta(e, mp.CurrentEvaluation(), mp.Problem().Minimizing())
	if delta >= 0 || mp.RNG().Float64() < math.Exp(delta/mp.temperature) {
		_, err = mp.Accept(m)

		return err
	}
	mp.Reject(m)

	return nil
}
