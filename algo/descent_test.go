// Tests for the descent strategies, with shared subset fixtures.
package algo_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/descent/algo"
	"github.com/katalvlaran/descent/core"
	"github.com/katalvlaran/descent/search"
	"github.com/katalvlaran/descent/subset"
)

// sumObjective sums the selected IDs of a subset solution.
type sumObjective struct {
	minimize bool
}

func (o sumObjective) Evaluate(s core.Solution) core.Evaluation {
	sol := s.(*subset.Solution)
	total := 0
	for _, id := range sol.SelectedIDs() {
		total += id
	}

	return core.NewSimpleEvaluation(float64(total))
}

func (o sumObjective) Minimizing() bool { return o.minimize }

func universe(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}

	return ids
}

// newSumProblem builds a fixed-size subset problem over IDs 0..n-1.
func newSumProblem(t *testing.T, n, size int, minimize bool) *core.GenericProblem {
	t.Helper()
	p, err := subset.NewFixedSizeProblem(sumObjective{minimize: minimize}, universe(n), size)
	require.NoError(t, err)

	return p
}

func newSwapNeighbourhood(t *testing.T) *subset.SingleSwapNeighbourhood {
	t.Helper()
	n, err := subset.NewSingleSwapNeighbourhood()
	require.NoError(t, err)

	return n
}

// selection builds a subset solution over IDs 0..n-1 with the given
// IDs selected.
func selection(t *testing.T, n int, ids ...int) *subset.Solution {
	t.Helper()
	sol, err := subset.NewSolution(universe(n))
	require.NoError(t, err)
	for _, id := range ids {
		require.NoError(t, sol.Select(id))
	}

	return sol
}

func seeded(seed int64) search.Option {
	return search.WithRNG(rand.New(rand.NewSource(seed)))
}

// TestSteepestDescent_FindsOptimum climbs to the unique optimum of a
// tiny subset problem and stops there on its own.
func TestSteepestDescent_FindsOptimum(t *testing.T) {
	p := newSumProblem(t, 10, 3, false)
	sd, err := algo.NewSteepestDescent(p, newSwapNeighbourhood(t), seeded(1))
	require.NoError(t, err)

	require.NoError(t, sd.Start(context.Background()))

	require.NotNil(t, sd.BestSolution())
	assert.InDelta(t, 24.0, sd.BestEvaluation().Value(), 1e-9)
	assert.ElementsMatch(t, []int{7, 8, 9}, sd.BestSolution().(*subset.Solution).SelectedIDs())
	assert.Equal(t, search.StatusIdle, sd.Status())
}

// TestSteepestDescent_MinimizingSense descends to the smallest subset
// when the objective is minimized.
func TestSteepestDescent_MinimizingSense(t *testing.T) {
	p := newSumProblem(t, 10, 3, true)
	sd, err := algo.NewSteepestDescent(p, newSwapNeighbourhood(t), seeded(1))
	require.NoError(t, err)

	require.NoError(t, sd.Start(context.Background()))
	assert.InDelta(t, 3.0, sd.BestEvaluation().Value(), 1e-9)
	assert.ElementsMatch(t, []int{0, 1, 2}, sd.BestSolution().(*subset.Solution).SelectedIDs())
}

// TestSteepestDescent_StopsAtOptimumImmediately detects a local
// optimum on the first step.
func TestSteepestDescent_StopsAtOptimumImmediately(t *testing.T) {
	p := newSumProblem(t, 5, 2, false)
	sd, err := algo.NewSteepestDescent(p, newSwapNeighbourhood(t), seeded(1))
	require.NoError(t, err)
	require.NoError(t, sd.SetCurrentSolution(selection(t, 5, 3, 4)))

	require.NoError(t, sd.Start(context.Background()))
	assert.Equal(t, int64(1), sd.Steps())
	assert.InDelta(t, 7.0, sd.BestEvaluation().Value(), 1e-9)
}

// TestRandomDescent_BestTracksCurrent only ever accepts improvements,
// so the current solution is the best solution.
func TestRandomDescent_BestTracksCurrent(t *testing.T) {
	p := newSumProblem(t, 10, 3, false)
	rd, err := algo.NewRandomDescent(p, newSwapNeighbourhood(t), seeded(1))
	require.NoError(t, err)

	var values []float64
	require.NoError(t, rd.AddListener(&search.Listener{
		NewBestSolution: func(_ *search.Search, _ core.Solution, e core.Evaluation, _ core.Validation) {
			values = append(values, e.Value())
		},
	}))

	c, err := search.NewMaxSteps(300)
	require.NoError(t, err)
	require.NoError(t, rd.AddStopCriterion(c))
	require.NoError(t, rd.SetStopCriterionCheckPeriod(time.Millisecond))

	require.NoError(t, rd.Start(context.Background()))

	assert.InDelta(t, rd.BestEvaluation().Value(), rd.CurrentEvaluation().Value(), 1e-9)
	for i := 1; i < len(values); i++ {
		assert.Greater(t, values[i], values[i-1])
	}
	assert.Equal(t, rd.Steps(), rd.NumAcceptedMoves()+rd.NumRejectedMoves())
}
