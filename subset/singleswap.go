// SingleSwapNeighbourhood: all moves exchanging one selected ID for
// one unselected ID.
package subset

import (
	"math/rand"

	"github.com/katalvlaran/descent/core"
)

// SingleSwapNeighbourhood generates every move that swaps a single
// selected ID with a single unselected ID, keeping the subset size
// unchanged. For s selected and u unselected non-fixed IDs there are
// exactly s·u moves.
type SingleSwapNeighbourhood struct {
	opts options
}

// NewSingleSwapNeighbourhood creates the neighbourhood.
func NewSingleSwapNeighbourhood(opts ...Option) (*SingleSwapNeighbourhood, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &SingleSwapNeighbourhood{opts: o}, nil
}

// RandomMove returns a uniformly random swap, or nil when no ID can be
// added or none removed.
func (n *SingleSwapNeighbourhood) RandomMove(s core.Solution, rng *rand.Rand) core.Move {
	sol, ok := s.(*Solution)
	if !ok {
		return nil
	}
	removable, addable := n.opts.candidates(sol)
	if len(removable) == 0 || len(addable) == 0 {
		return nil
	}

	return NewSwapMove(addable[rng.Intn(len(addable))], removable[rng.Intn(len(removable))])
}

// AllMoves enumerates every single swap.
func (n *SingleSwapNeighbourhood) AllMoves(s core.Solution) []core.Move {
	sol, ok := s.(*Solution)
	if !ok {
		return nil
	}
	removable, addable := n.opts.candidates(sol)
	moves := make([]core.Move, 0, len(removable)*len(addable))
	for _, del := range removable {
		for _, add := range addable {
			moves = append(moves, NewSwapMove(add, del))
		}
	}

	return moves
}
