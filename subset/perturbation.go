// SinglePerturbationNeighbourhood: additions, deletions and swaps
// under subset-size bounds, with roulette selection of the move type.
package subset

import (
	"math/rand"

	"github.com/katalvlaran/descent/core"
)

// SinglePerturbationNeighbourhood generates single additions, single
// deletions and single swaps, respecting a minimum and maximum subset
// size: additions are generated only while the subset is below the
// maximum and deletions only while above the minimum; swaps never
// change the size.
//
// RandomMove first picks the move type by roulette, weighting each
// type by the number of moves it can currently generate, so every
// individual move is equally likely.
type SinglePerturbationNeighbourhood struct {
	minSize int
	maxSize int
	opts    options
}

// NewSinglePerturbationNeighbourhood creates the neighbourhood with
// the given subset-size bounds. Returns ErrBadSubsetSize unless
// 0 ≤ minSize ≤ maxSize.
func NewSinglePerturbationNeighbourhood(minSize, maxSize int, opts ...Option) (*SinglePerturbationNeighbourhood, error) {
	if minSize < 0 || maxSize < minSize {
		return nil, ErrBadSubsetSize
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &SinglePerturbationNeighbourhood{minSize: minSize, maxSize: maxSize, opts: o}, nil
}

// MinSubsetSize returns the lower subset-size bound.
func (n *SinglePerturbationNeighbourhood) MinSubsetSize() int { return n.minSize }

// MaxSubsetSize returns the upper subset-size bound.
func (n *SinglePerturbationNeighbourhood) MaxSubsetSize() int { return n.maxSize }

// moveCounts returns how many additions, deletions and swaps are
// currently possible.
func (n *SinglePerturbationNeighbourhood) moveCounts(sol *Solution, removable, addable []int) (numAdd, numDel, numSwap int) {
	if sol.NumSelected() < n.maxSize {
		numAdd = len(addable)
	}
	if sol.NumSelected() > n.minSize {
		numDel = len(removable)
	}
	numSwap = len(removable) * len(addable)

	return numAdd, numDel, numSwap
}

// RandomMove returns a uniformly random perturbation, or nil when the
// bounds and fixed IDs leave nothing to perturb.
func (n *SinglePerturbationNeighbourhood) RandomMove(s core.Solution, rng *rand.Rand) core.Move {
	sol, ok := s.(*Solution)
	if !ok {
		return nil
	}
	removable, addable := n.opts.candidates(sol)
	numAdd, numDel, numSwap := n.moveCounts(sol, removable, addable)

	switch rouletteSelect([]float64{float64(numAdd), float64(numDel), float64(numSwap)}, rng) {
	case 0:
		return NewAdditionMove(addable[rng.Intn(len(addable))])
	case 1:
		return NewDeletionMove(removable[rng.Intn(len(removable))])
	case 2:
		return NewSwapMove(addable[rng.Intn(len(addable))], removable[rng.Intn(len(removable))])
	default:
		return nil
	}
}

// AllMoves enumerates every admissible addition, deletion and swap.
func (n *SinglePerturbationNeighbourhood) AllMoves(s core.Solution) []core.Move {
	sol, ok := s.(*Solution)
	if !ok {
		return nil
	}
	removable, addable := n.opts.candidates(sol)
	numAdd, numDel, numSwap := n.moveCounts(sol, removable, addable)

	moves := make([]core.Move, 0, numAdd+numDel+numSwap)
	if numAdd > 0 {
		for _, id := range addable {
			moves = append(moves, NewAdditionMove(id))
		}
	}
	if numDel > 0 {
		for _, id := range removable {
			moves = append(moves, NewDeletionMove(id))
		}
	}
	for _, del := range removable {
		for _, add := range addable {
			moves = append(moves, NewSwapMove(add, del))
		}
	}

	return moves
}
