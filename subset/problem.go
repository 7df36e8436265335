// Fixed-size subset problems: a size constraint with an incremental
// validation path, and a helper that assembles a GenericProblem whose
// random solutions select exactly the requested number of IDs.
package subset

import (
	"math/rand"

	"github.com/katalvlaran/descent/core"
)

// SizeConstraint validates that the selection size stays within
// [minSize, maxSize]. It validates moves incrementally from the move's
// added and deleted ID counts.
type SizeConstraint struct {
	minSize int
	maxSize int
}

// NewSizeConstraint creates the constraint. Returns ErrBadSubsetSize
// unless 0 ≤ minSize ≤ maxSize.
func NewSizeConstraint(minSize, maxSize int) (SizeConstraint, error) {
	if minSize < 0 || maxSize < minSize {
		return SizeConstraint{}, ErrBadSubsetSize
	}

	return SizeConstraint{minSize: minSize, maxSize: maxSize}, nil
}

// Validate checks the current selection size.
func (c SizeConstraint) Validate(s core.Solution) core.Validation {
	sol, ok := s.(*Solution)
	if !ok {
		return core.NewSimpleValidation(false)
	}

	return c.validateSize(sol.NumSelected())
}

// ValidateMove checks the selection size after the move without
// applying it.
func (c SizeConstraint) ValidateMove(m core.Move, s core.Solution, _ core.Validation) (core.Validation, error) {
	sol, ok := s.(*Solution)
	if !ok {
		return nil, core.ErrIncompatibleSolution
	}
	sm, ok := m.(Move)
	if !ok {
		return nil, core.ErrIncompatibleMove
	}

	return c.validateSize(sol.NumSelected() + len(sm.AddedIDs()) - len(sm.DeletedIDs())), nil
}

func (c SizeConstraint) validateSize(size int) core.Validation {
	return core.NewSimpleValidation(size >= c.minSize && size <= c.maxSize)
}

// NewRandomSolutionFactory returns a factory producing solutions over
// the universe with a uniformly random selection of exactly size IDs.
func NewRandomSolutionFactory(universe []int, size int) (core.RandomSolutionFactory, error) {
	// Validate once up front so the factory itself cannot fail.
	if _, err := RandomSolution(universe, size, rand.New(rand.NewSource(0))); err != nil {
		return nil, err
	}
	frozen := append([]int(nil), universe...)

	return func(rng *rand.Rand) core.Solution {
		s, _ := RandomSolution(frozen, size, rng)

		return s
	}, nil
}

// NewFixedSizeProblem assembles a GenericProblem over the given
// universe whose random solutions select exactly size IDs and whose
// validation enforces that size. Additional constraints and problem
// options may be supplied.
func NewFixedSizeProblem(obj core.Objective, universe []int, size int, opts ...core.ProblemOption) (*core.GenericProblem, error) {
	factory, err := NewRandomSolutionFactory(universe, size)
	if err != nil {
		return nil, err
	}
	sc, err := NewSizeConstraint(size, size)
	if err != nil {
		return nil, err
	}
	combined := append([]core.ProblemOption{core.WithMandatoryConstraint(sc)}, opts...)

	return core.NewGenericProblem(obj, factory, combined...)
}
