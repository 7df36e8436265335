// Parallel tempering tests.
package algo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/descent/algo"
	"github.com/katalvlaran/descent/search"
	"github.com/katalvlaran/descent/subset"
)

// TestNewParallelTempering_Violations rejects bad ladder parameters.
func TestNewParallelTempering_Violations(t *testing.T) {
	p := newSumProblem(t, 5, 2, false)
	n := newSwapNeighbourhood(t)

	_, err := algo.NewParallelTempering(p, n, 0, 1, 10)
	assert.ErrorIs(t, err, algo.ErrOptionViolation)
	_, err = algo.NewParallelTempering(p, n, 3, 0, 10)
	assert.ErrorIs(t, err, algo.ErrOptionViolation)
	_, err = algo.NewParallelTempering(p, n, 3, 10, 10)
	assert.ErrorIs(t, err, algo.ErrOptionViolation)
}

// TestParallelTempering_GeometricLadder spaces the replica
// temperatures geometrically between the bounds.
func TestParallelTempering_GeometricLadder(t *testing.T) {
	p := newSumProblem(t, 5, 2, false)
	pt, err := algo.NewParallelTempering(p, newSwapNeighbourhood(t), 4, 1, 8, seeded(1))
	require.NoError(t, err)

	assert.Equal(t, 4, pt.NumReplicas())
	temps := pt.Temperatures()
	require.Len(t, temps, 4)
	for i, want := range []float64{1, 2, 4, 8} {
		assert.InDelta(t, want, temps[i], 1e-9)
	}
}

// TestParallelTempering_SingleReplica pins a one-rung ladder to the
// minimum temperature.
func TestParallelTempering_SingleReplica(t *testing.T) {
	p := newSumProblem(t, 5, 2, false)
	pt, err := algo.NewParallelTempering(p, newSwapNeighbourhood(t), 1, 0.5, 8, seeded(1))
	require.NoError(t, err)

	temps := pt.Temperatures()
	require.Len(t, temps, 1)
	assert.InDelta(t, 0.5, temps[0], 1e-9)
}

// TestParallelTempering_ReplicaSteps validates and applies the
// per-batch step count.
func TestParallelTempering_ReplicaSteps(t *testing.T) {
	p := newSumProblem(t, 5, 2, false)
	pt, err := algo.NewParallelTempering(p, newSwapNeighbourhood(t), 2, 1, 8, seeded(1))
	require.NoError(t, err)

	assert.Equal(t, algo.DefaultReplicaSteps, pt.ReplicaSteps())
	assert.ErrorIs(t, pt.SetReplicaSteps(0), algo.ErrOptionViolation)
	require.NoError(t, pt.SetReplicaSteps(10))
	assert.Equal(t, int64(10), pt.ReplicaSteps())
}

// TestParallelTempering_CountersFoldReplicas accumulates exactly the
// replicas' accept and reject decisions into the main counters.
func TestParallelTempering_CountersFoldReplicas(t *testing.T) {
	p := newSumProblem(t, 10, 3, false)
	pt, err := algo.NewParallelTempering(p, newSwapNeighbourhood(t), 2, 0.5, 50, seeded(3))
	require.NoError(t, err)
	require.NoError(t, pt.SetReplicaSteps(5))

	require.NoError(t, pt.AddListener(&search.Listener{
		StepCompleted: func(s *search.Search, steps int64) {
			if steps >= 3 {
				s.Stop()
			}
		},
	}))

	require.NoError(t, pt.Start(context.Background()))

	assert.Equal(t, int64(3), pt.Steps())
	// 3 main steps, 2 replicas, 5 replica steps each: every replica
	// step decides exactly one move
	assert.Equal(t, int64(30), pt.NumAcceptedMoves()+pt.NumRejectedMoves())
}

// TestParallelTempering_CancelledMidBatch surfaces context
// cancellation from inside a long replica batch as ErrInterrupted.
func TestParallelTempering_CancelledMidBatch(t *testing.T) {
	p := newSumProblem(t, 10, 3, false)
	pt, err := algo.NewParallelTempering(p, newSwapNeighbourhood(t), 2, 0.5, 50, seeded(3))
	require.NoError(t, err)
	require.NoError(t, pt.SetReplicaSteps(1<<40))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = pt.Start(ctx)
	require.ErrorIs(t, err, search.ErrInterrupted)
	assert.Equal(t, search.StatusIdle, pt.Status())
}

// TestParallelTempering_FindsOptimum reaches the optimum of a tiny
// subset problem within a few batches.
func TestParallelTempering_FindsOptimum(t *testing.T) {
	p := newSumProblem(t, 10, 3, false)
	pt, err := algo.NewParallelTempering(p, newSwapNeighbourhood(t), 3, 0.1, 10, seeded(5))
	require.NoError(t, err)
	require.NoError(t, pt.SetReplicaSteps(200))

	require.NoError(t, pt.AddListener(&search.Listener{
		StepCompleted: func(s *search.Search, steps int64) {
			if steps >= 5 {
				s.Stop()
			}
		},
	}))

	require.NoError(t, pt.Start(context.Background()))

	require.NotNil(t, pt.BestSolution())
	require.NotNil(t, pt.BestValidation())
	assert.True(t, pt.BestValidation().Passed())
	assert.Equal(t, 3, pt.BestSolution().(*subset.Solution).NumSelected())
	assert.InDelta(t, 24.0, pt.BestEvaluation().Value(), 1e-9)
}

// TestParallelTempering_SetCurrentSolution seeds the main search and
// every replica while idle.
func TestParallelTempering_SetCurrentSolution(t *testing.T) {
	p := newSumProblem(t, 10, 3, false)
	pt, err := algo.NewParallelTempering(p, newSwapNeighbourhood(t), 2, 1, 8, seeded(1))
	require.NoError(t, err)

	sol := selection(t, 10, 0, 1, 2)
	require.NoError(t, pt.SetCurrentSolution(sol))
	assert.ElementsMatch(t, []int{0, 1, 2}, pt.CurrentSolution().(*subset.Solution).SelectedIDs())

	multi, err := subset.NewMultiSwapNeighbourhood(2)
	require.NoError(t, err)
	require.NoError(t, pt.SetNeighbourhood(multi))
	assert.Equal(t, multi, pt.Neighbourhood())
}
