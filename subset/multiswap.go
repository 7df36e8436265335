// MultiSwapNeighbourhood: all simultaneous j-swaps for j up to a
// configured maximum.
package subset

import (
	"math/rand"

	"github.com/katalvlaran/descent/core"
)

// MultiSwapNeighbourhood generates moves that simultaneously exchange
// j selected IDs for j unselected IDs, for every j from 1 up to the
// configured maximum (clipped to what the solution allows). Subset
// size is always preserved.
//
// For s selected and u unselected non-fixed IDs and maximum k, the
// neighbourhood holds
//
//	Σ_{j=1..min(k,s,u)} C(s,j) · C(u,j)
//
// moves. This grows very quickly with k; enumerating AllMoves for
// large k is rarely practical.
type MultiSwapNeighbourhood struct {
	maxSwaps int
	opts     options
}

// NewMultiSwapNeighbourhood creates the neighbourhood performing up to
// maxSwaps simultaneous swaps. Returns ErrBadMaxSwaps when maxSwaps is
// not positive.
func NewMultiSwapNeighbourhood(maxSwaps int, opts ...Option) (*MultiSwapNeighbourhood, error) {
	if maxSwaps <= 0 {
		return nil, ErrBadMaxSwaps
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &MultiSwapNeighbourhood{maxSwaps: maxSwaps, opts: o}, nil
}

// MaxSwaps returns the configured maximum number of simultaneous
// swaps.
func (n *MultiSwapNeighbourhood) MaxSwaps() int { return n.maxSwaps }

// NumMoves returns the exact neighbourhood size for s.
func (n *MultiSwapNeighbourhood) NumMoves(s *Solution) int64 {
	removable, addable := n.opts.candidates(s)
	curMax := min3(n.maxSwaps, len(removable), len(addable))
	var total int64
	for j := 1; j <= curMax; j++ {
		total += binomial(len(removable), j) * binomial(len(addable), j)
	}

	return total
}

// RandomMove draws the number of swaps uniformly from the feasible
// range, then samples the swapped IDs uniformly. Returns nil when no
// swap is possible.
func (n *MultiSwapNeighbourhood) RandomMove(s core.Solution, rng *rand.Rand) core.Move {
	sol, ok := s.(*Solution)
	if !ok {
		return nil
	}
	removable, addable := n.opts.candidates(sol)
	curMax := min3(n.maxSwaps, len(removable), len(addable))
	if curMax == 0 {
		return nil
	}
	numSwaps := 1 + rng.Intn(curMax)

	return NewGeneralMove(
		randomSample(addable, numSwaps, rng),
		randomSample(removable, numSwaps, rng),
	)
}

// AllMoves enumerates every j-swap for j = 1..min(maxSwaps, s, u)
// through lazy combination iterators.
func (n *MultiSwapNeighbourhood) AllMoves(s core.Solution) []core.Move {
	sol, ok := s.(*Solution)
	if !ok {
		return nil
	}
	removable, addable := n.opts.candidates(sol)
	curMax := min3(n.maxSwaps, len(removable), len(addable))
	moves := make([]core.Move, 0)
	for j := 1; j <= curMax; j++ {
		dels := newCombinations(removable, j)
		for del, ok := dels.Next(); ok; del, ok = dels.Next() {
			delCopy := append([]int(nil), del...)
			adds := newCombinations(addable, j)
			for add, ok := adds.Next(); ok; add, ok = adds.Next() {
				moves = append(moves, NewGeneralMove(add, delCopy))
			}
		}
	}

	return moves
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}

	return a
}
