// Package subset_test verifies the subset solution, the reversible
// moves, and the neighbourhood move counts including the fixed-ID
// guarantees.
package subset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/descent/core"
	"github.com/katalvlaran/descent/subset"
)

func universe(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}

	return ids
}

func solutionWithSelection(t *testing.T, n int, selected ...int) *subset.Solution {
	t.Helper()
	s, err := subset.NewSolution(universe(n))
	require.NoError(t, err)
	for _, id := range selected {
		require.NoError(t, s.Select(id))
	}

	return s
}

// moveKey is a canonical, comparable identity of a subset move used to
// compare neighbourhoods that produce different concrete move types.
type moveKey struct {
	added   string
	deleted string
}

func keyOf(m core.Move) moveKey {
	sm := m.(subset.Move)
	var k moveKey
	for _, id := range sm.AddedIDs() {
		k.added += string(rune('A' + id))
	}
	for _, id := range sm.DeletedIDs() {
		k.deleted += string(rune('A' + id))
	}

	return k
}

// TestSolution_Errors verifies the universe and ID guards.
func TestSolution_Errors(t *testing.T) {
	_, err := subset.NewSolution(nil)
	assert.ErrorIs(t, err, subset.ErrEmptyUniverse)

	_, err = subset.NewSolution([]int{1, 2, 2})
	assert.ErrorIs(t, err, subset.ErrDuplicateID)

	s := solutionWithSelection(t, 3)
	assert.ErrorIs(t, s.Select(99), subset.ErrUnknownID)
	assert.ErrorIs(t, s.Deselect(99), subset.ErrUnknownID)

	_, err = subset.RandomSolution(universe(3), 4, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, subset.ErrBadSubsetSize)
}

// TestSolution_CopyAndEqual verifies deep-copy independence and
// structural equality.
func TestSolution_CopyAndEqual(t *testing.T) {
	s := solutionWithSelection(t, 5, 0, 2)
	c := s.Copy().(*subset.Solution)
	assert.True(t, s.Equal(c))

	require.NoError(t, c.Select(4))
	assert.False(t, s.Equal(c), "mutating the copy must not affect the original")
	assert.False(t, s.Selected(4))

	other := solutionWithSelection(t, 5, 0, 3)
	assert.False(t, s.Equal(other))
}

// TestMoves_UndoIdentity checks that undo after apply restores the
// exact selection for every move shape.
func TestMoves_UndoIdentity(t *testing.T) {
	moves := []core.Move{
		subset.NewAdditionMove(3),
		subset.NewDeletionMove(1),
		subset.NewSwapMove(4, 1),
		subset.NewGeneralMove([]int{3, 4}, []int{0, 1}),
	}
	for _, m := range moves {
		s := solutionWithSelection(t, 6, 0, 1, 2)
		before := s.Copy()
		require.NoError(t, m.Apply(s))
		assert.False(t, s.Equal(before), "apply must change the solution")
		require.NoError(t, m.Undo(s))
		assert.True(t, s.Equal(before), "undo after apply must restore the solution")
	}
}

// TestMoves_Incompatible verifies the guards on apply and undo.
func TestMoves_Incompatible(t *testing.T) {
	s := solutionWithSelection(t, 4, 0)

	assert.ErrorIs(t, subset.NewAdditionMove(0).Apply(s), core.ErrIncompatibleMove)
	assert.ErrorIs(t, subset.NewDeletionMove(2).Apply(s), core.ErrIncompatibleMove)
	assert.ErrorIs(t, subset.NewSwapMove(1, 2).Apply(s), core.ErrIncompatibleMove)
	assert.ErrorIs(t, subset.NewGeneralMove([]int{0}, nil).Apply(s), core.ErrIncompatibleMove)
}

// TestMoves_HashEqual verifies the value identity contract.
func TestMoves_HashEqual(t *testing.T) {
	a := subset.NewGeneralMove([]int{2, 1}, []int{5})
	b := subset.NewGeneralMove([]int{1, 2}, []int{5})
	assert.True(t, a.Equal(b), "ID order must not matter")
	assert.Equal(t, a.Hash(), b.Hash())

	// adding {3} and deleting {3} are different moves
	assert.NotEqual(t, subset.NewAdditionMove(3).Hash(), subset.NewDeletionMove(3).Hash())
	assert.False(t, subset.NewAdditionMove(3).Equal(subset.NewDeletionMove(3)))
}

// TestMultiSwap_MoveCount checks the exact neighbourhood size for
// 20 IDs, 10 selected, up to 2 swaps: 10·10 + 45·45 = 2125.
func TestMultiSwap_MoveCount(t *testing.T) {
	n, err := subset.NewMultiSwapNeighbourhood(2)
	require.NoError(t, err)
	s := solutionWithSelection(t, 20, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	moves := n.AllMoves(s)
	assert.Len(t, moves, 2125)
	assert.Equal(t, int64(2125), n.NumMoves(s))

	// all moves are distinct
	seen := make(map[moveKey]bool, len(moves))
	for _, m := range moves {
		k := keyOf(m)
		assert.False(t, seen[k], "duplicate move %v", k)
		seen[k] = true
	}
}

// TestMultiSwap_OneSwapMatchesSingleSwap checks that with a maximum of
// one swap the multi-swap neighbourhood generates exactly the single
// swaps.
func TestMultiSwap_OneSwapMatchesSingleSwap(t *testing.T) {
	multi, err := subset.NewMultiSwapNeighbourhood(1)
	require.NoError(t, err)
	single, err := subset.NewSingleSwapNeighbourhood()
	require.NoError(t, err)

	s := solutionWithSelection(t, 20, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	multiMoves := multi.AllMoves(s)
	singleMoves := single.AllMoves(s)
	require.Len(t, multiMoves, 100)
	require.Len(t, singleMoves, 100)

	want := make(map[moveKey]bool, len(singleMoves))
	for _, m := range singleMoves {
		want[keyOf(m)] = true
	}
	for _, m := range multiMoves {
		assert.True(t, want[keyOf(m)], "multi-swap move %v not a single swap", keyOf(m))
	}
}

// TestFixedIDs_NeverTouched draws many random moves and enumerates all
// moves from every neighbourhood, asserting that no move adds or
// removes a fixed ID.
func TestFixedIDs_NeverTouched(t *testing.T) {
	fixed := []int{0, 3, 7, 12}
	fixedSet := map[int]bool{0: true, 3: true, 7: true, 12: true}
	rng := rand.New(rand.NewSource(42))

	single, err := subset.NewSingleSwapNeighbourhood(subset.WithFixedIDs(fixed...))
	require.NoError(t, err)
	multi, err := subset.NewMultiSwapNeighbourhood(3, subset.WithFixedIDs(fixed...))
	require.NoError(t, err)
	pert, err := subset.NewSinglePerturbationNeighbourhood(2, 12, subset.WithFixedIDs(fixed...))
	require.NoError(t, err)

	s := solutionWithSelection(t, 15, 0, 1, 2, 3, 4, 5, 6)
	neighbourhoods := []core.Neighbourhood{single, multi, pert}

	checkMove := func(m core.Move) {
		t.Helper()
		sm := m.(subset.Move)
		for _, id := range sm.AddedIDs() {
			assert.False(t, fixedSet[id], "move adds fixed ID %d", id)
		}
		for _, id := range sm.DeletedIDs() {
			assert.False(t, fixedSet[id], "move deletes fixed ID %d", id)
		}
	}

	for _, n := range neighbourhoods {
		for i := 0; i < 1000; i++ {
			if m := n.RandomMove(s, rng); m != nil {
				checkMove(m)
			}
		}
		for _, m := range n.AllMoves(s) {
			checkMove(m)
		}
	}
}

// TestFixedIDs_AllFixed verifies that pinning the entire universe
// leaves no moves at all.
func TestFixedIDs_AllFixed(t *testing.T) {
	all := universe(6)
	s := solutionWithSelection(t, 6, 0, 1, 2)
	rng := rand.New(rand.NewSource(7))

	single, err := subset.NewSingleSwapNeighbourhood(subset.WithFixedIDs(all...))
	require.NoError(t, err)
	multi, err := subset.NewMultiSwapNeighbourhood(2, subset.WithFixedIDs(all...))
	require.NoError(t, err)
	pert, err := subset.NewSinglePerturbationNeighbourhood(0, 6, subset.WithFixedIDs(all...))
	require.NoError(t, err)

	for _, n := range []core.Neighbourhood{single, multi, pert} {
		assert.Nil(t, n.RandomMove(s, rng))
		assert.Empty(t, n.AllMoves(s))
	}
}

// TestSizePreservingNeighbourhoods verifies that swap-only
// neighbourhoods never change the subset size.
func TestSizePreservingNeighbourhoods(t *testing.T) {
	multi, err := subset.NewMultiSwapNeighbourhood(3)
	require.NoError(t, err)
	s := solutionWithSelection(t, 12, 0, 1, 2, 3, 4)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		m := multi.RandomMove(s, rng)
		require.NotNil(t, m)
		require.NoError(t, m.Apply(s))
		assert.Equal(t, 5, s.NumSelected())
		require.NoError(t, m.Undo(s))
	}
}

// TestSinglePerturbation_SizeBounds checks that additions and
// deletions respect the configured subset-size bounds.
func TestSinglePerturbation_SizeBounds(t *testing.T) {
	n, err := subset.NewSinglePerturbationNeighbourhood(3, 3)
	require.NoError(t, err)

	// at the bound in both directions only swaps remain
	s := solutionWithSelection(t, 6, 0, 1, 2)
	for _, m := range n.AllMoves(s) {
		sm := m.(subset.Move)
		assert.Equal(t, len(sm.AddedIDs()), len(sm.DeletedIDs()), "only swaps allowed at a tight bound")
	}
	assert.Len(t, n.AllMoves(s), 3*3)

	// below the maximum additions appear
	wide, err := subset.NewSinglePerturbationNeighbourhood(1, 5)
	require.NoError(t, err)
	assert.Len(t, wide.AllMoves(s), 3+3+9)

	_, err = subset.NewSinglePerturbationNeighbourhood(4, 2)
	assert.ErrorIs(t, err, subset.ErrBadSubsetSize)
}

// TestSinglePerturbation_RandomMoveBounds draws many random moves and
// applies them, asserting the size never leaves the bounds.
func TestSinglePerturbation_RandomMoveBounds(t *testing.T) {
	n, err := subset.NewSinglePerturbationNeighbourhood(2, 4)
	require.NoError(t, err)
	s := solutionWithSelection(t, 8, 0, 1, 2)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		m := n.RandomMove(s, rng)
		require.NotNil(t, m)
		require.NoError(t, m.Apply(s))
		size := s.NumSelected()
		assert.GreaterOrEqual(t, size, 2)
		assert.LessOrEqual(t, size, 4)
	}
}

// TestNeighbourhood_Errors verifies constructor guards.
func TestNeighbourhood_Errors(t *testing.T) {
	_, err := subset.NewMultiSwapNeighbourhood(0)
	assert.ErrorIs(t, err, subset.ErrBadMaxSwaps)

	_, err = subset.NewMultiSwapNeighbourhood(-2)
	assert.ErrorIs(t, err, subset.ErrBadMaxSwaps)
}

// TestSizeConstraint verifies full and incremental validation.
func TestSizeConstraint(t *testing.T) {
	c, err := subset.NewSizeConstraint(2, 3)
	require.NoError(t, err)

	s := solutionWithSelection(t, 6, 0, 1)
	assert.True(t, c.Validate(s).Passed())

	v, err := c.ValidateMove(subset.NewAdditionMove(4), s, nil)
	require.NoError(t, err)
	assert.True(t, v.Passed())

	v, err = c.ValidateMove(subset.NewDeletionMove(0), s, nil)
	require.NoError(t, err)
	assert.False(t, v.Passed(), "deleting below the minimum must fail")

	v, err = c.ValidateMove(subset.NewGeneralMove([]int{3, 4}, nil), s, nil)
	require.NoError(t, err)
	assert.False(t, v.Passed(), "adding above the maximum must fail")
}

// TestFixedSizeProblem checks factory sizes and size validation of the
// assembled problem.
func TestFixedSizeProblem(t *testing.T) {
	obj := countObjective{}
	p, err := subset.NewFixedSizeProblem(obj, universe(10), 4)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		s := p.RandomSolution(rng).(*subset.Solution)
		assert.Equal(t, 4, s.NumSelected())
		assert.True(t, p.Validate(s).Passed())
	}

	tooSmall := solutionWithSelection(t, 10, 0)
	assert.False(t, p.Validate(tooSmall).Passed())
}

// countObjective scores a solution by the sum of its selected IDs,
// maximizing.
type countObjective struct{}

func (countObjective) Evaluate(s core.Solution) core.Evaluation {
	sol := s.(*subset.Solution)
	var total float64
	for _, id := range sol.SelectedIDs() {
		total += float64(id)
	}

	return core.NewSimpleEvaluation(total)
}

func (countObjective) Minimizing() bool { return false }
