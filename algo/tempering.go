// Parallel tempering: a ladder of Metropolis replicas at increasing
// temperatures, exchanging solutions between neighbouring replicas.
package algo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/descent/core"
	"github.com/katalvlaran/descent/search"
)

// DefaultReplicaSteps is the number of steps each replica performs per
// step of the parallel tempering search.
const DefaultReplicaSteps int64 = 500

// ParallelTempering runs a ladder of Metropolis replicas whose
// temperatures grow geometrically from Tmin to Tmax:
//
//	T_i = Tmin · (Tmax/Tmin)^(i/(N−1))
//
// Every step of the main search runs each replica for a fixed number
// of steps concurrently, then sweeps the ladder bottom-up and swaps
// the current solutions of neighbouring replicas with the Metropolis
// exchange probability. Cold replicas refine good solutions while hot
// replicas explore; swaps let good solutions trickle down.
//
// Each replica owns a derived RNG and its own evaluated-move cache.
// The main search's accepted and rejected counters accumulate the
// replicas' counters.
type ParallelTempering struct {
	*search.NeighbourhoodSearch

	replicas     []*Metropolis
	coord        *search.ReplicaCoordinator
	replicaSteps int64
	lastAccepted []int64
	lastRejected []int64
}

// NewParallelTempering creates a parallel tempering search over p
// stepping through n with numReplicas Metropolis replicas between
// temperatures tmin and tmax. Returns ErrOptionViolation unless
// numReplicas ≥ 1 and 0 < tmin < tmax.
func NewParallelTempering(p core.Problem, n core.Neighbourhood, numReplicas int, tmin, tmax float64, opts ...search.Option) (*ParallelTempering, error) {
	if numReplicas < 1 {
		return nil, fmt.Errorf("%w: need at least one replica, got %d", ErrOptionViolation, numReplicas)
	}
	if tmin <= 0 {
		return nil, fmt.Errorf("%w: non-positive minimum temperature %g", ErrOptionViolation, tmin)
	}
	if tmax <= tmin {
		return nil, fmt.Errorf("%w: maximum temperature %g not above minimum %g", ErrOptionViolation, tmax, tmin)
	}

	pt := &ParallelTempering{
		replicaSteps: DefaultReplicaSteps,
		lastAccepted: make([]int64, numReplicas),
		lastRejected: make([]int64, numReplicas),
	}
	combined := append([]search.Option{
		search.WithRunStartedHook(pt.startReplicas),
		search.WithRunStoppedHook(pt.stopReplicas),
	}, opts...)
	ns, err := search.NewNeighbourhoodSearch("ParallelTempering", p, n,
		func(*search.NeighbourhoodSearch) error { return pt.step() }, combined...)
	if err != nil {
		return nil, err
	}
	pt.NeighbourhoodSearch = ns

	pt.replicas = make([]*Metropolis, numReplicas)
	subs := make([]search.Replica, numReplicas)
	for i := range pt.replicas {
		temperature := tmin
		if numReplicas > 1 {
			temperature = tmin * math.Pow(tmax/tmin, float64(i)/float64(numReplicas-1))
		}
		derived := rand.New(rand.NewSource(ns.RNG().Int63()))
		replica, err := NewMetropolis(p, n, temperature, search.WithRNG(derived))
		if err != nil {
			return nil, err
		}
		pt.replicas[i] = replica
		subs[i] = replica
	}
	pt.coord = search.NewReplicaCoordinator(ns.Search, subs...)

	return pt, nil
}

// NumReplicas returns the size of the temperature ladder.
func (pt *ParallelTempering) NumReplicas() int { return len(pt.replicas) }

// Temperatures returns the replica temperatures, coldest first.
func (pt *ParallelTempering) Temperatures() []float64 {
	temps := make([]float64, len(pt.replicas))
	for i, r := range pt.replicas {
		temps[i] = r.Temperature()
	}

	return temps
}

// ReplicaSteps returns the number of steps each replica performs per
// main step.
func (pt *ParallelTempering) ReplicaSteps() int64 { return pt.replicaSteps }

// SetReplicaSteps sets the number of steps each replica performs per
// main step. The count must be positive and the search idle.
func (pt *ParallelTempering) SetReplicaSteps(steps int64) error {
	if steps < 1 {
		return fmt.Errorf("%w: non-positive replica step count %d", ErrOptionViolation, steps)
	}
	if pt.Status() != search.StatusIdle {
		return search.ErrNotIdle
	}
	pt.replicaSteps = steps

	return nil
}

// SetNeighbourhood replaces the neighbourhood of the main search and
// of every replica. The search must be idle.
func (pt *ParallelTempering) SetNeighbourhood(n core.Neighbourhood) error {
	if err := pt.NeighbourhoodSearch.SetNeighbourhood(n); err != nil {
		return err
	}
	for _, r := range pt.replicas {
		if err := r.SetNeighbourhood(n); err != nil {
			return err
		}
	}

	return nil
}

// SetCurrentSolution installs distinct deep copies of sol as the
// current solution of the main search and of every replica. The search
// must be idle.
func (pt *ParallelTempering) SetCurrentSolution(sol core.Solution) error {
	if err := pt.NeighbourhoodSearch.SetCurrentSolution(sol); err != nil {
		return err
	}
	for _, r := range pt.replicas {
		if err := r.SetCurrentSolution(sol); err != nil {
			return err
		}
	}

	return nil
}

// startReplicas seeds every replica that has no current solution yet
// with a deep copy of the main current solution and moves them into
// the running state.
func (pt *ParallelTempering) startReplicas() error {
	cur := pt.CurrentSolution()
	for _, r := range pt.replicas {
		if cur != nil && r.CurrentSolution() == nil {
			if err := r.SetCurrentSolution(cur); err != nil {
				return err
			}
		}
	}
	if err := pt.coord.StartRun(); err != nil {
		return err
	}
	for i := range pt.replicas {
		pt.lastAccepted[i], pt.lastRejected[i] = 0, 0
	}

	return nil
}

func (pt *ParallelTempering) stopReplicas() {
	pt.coord.FinishRun()
}

func (pt *ParallelTempering) step() error {
	if err := pt.coord.RunBatch(pt.replicaSteps); err != nil {
		return err
	}
	pt.foldCounters()
	pt.sweepSwaps()
	pt.adoptBestReplica()

	return nil
}

// foldCounters accumulates the replicas' accepted and rejected move
// counters into the main counters.
func (pt *ParallelTempering) foldCounters() {
	for i, r := range pt.replicas {
		accepted, rejected := r.NumAcceptedMoves(), r.NumRejectedMoves()
		pt.IncNumAcceptedMoves(accepted - pt.lastAccepted[i])
		pt.IncNumRejectedMoves(rejected - pt.lastRejected[i])
		pt.lastAccepted[i], pt.lastRejected[i] = accepted, rejected
	}
}

// sweepSwaps walks the ladder bottom-up and swaps the current
// solutions of neighbouring replicas with probability
// min(1, exp((1/T_i − 1/T_j)·(E_j − E_i))), where E are the
// sense-applied solution values.
func (pt *ParallelTempering) sweepSwaps() {
	minimizing := pt.Problem().Minimizing()
	for i := len(pt.replicas) - 2; i >= 0; i-- {
		cold, hot := pt.replicas[i], pt.replicas[i+1]
		coldEval, hotEval := cold.CurrentEvaluation(), hot.CurrentEvaluation()
		if coldEval == nil || hotEval == nil {
			continue
		}
		coldEnergy, hotEnergy := coldEval.Value(), hotEval.Value()
		if minimizing {
			coldEnergy, hotEnergy = -coldEnergy, -hotEnergy
		}
		delta := (1/cold.Temperature() - 1/hot.Temperature()) * (hotEnergy - coldEnergy)
		if delta >= 0 || pt.RNG().Float64() < math.Exp(delta) {
			pt.coord.SwapStates(i, i+1)
			pt.UpdateBestSolution(cold.CurrentSolution(), cold.CurrentEvaluation(), cold.CurrentValidation())
			pt.UpdateBestSolution(hot.CurrentSolution(), hot.CurrentEvaluation(), hot.CurrentValidation())
		}
	}
}

// adoptBestReplica installs a deep copy of the best replica current
// solution as the main current solution.
func (pt *ParallelTempering) adoptBestReplica() {
	minimizing := pt.Problem().Minimizing()
	bestIdx := -1
	var bestEnergy float64
	for i, r := range pt.replicas {
		e := r.CurrentEvaluation()
		if e == nil {
			continue
		}
		energy := e.Value()
		if !minimizing {
			energy = -energy
		}
		if bestIdx < 0 || energy < bestEnergy {
			bestIdx, bestEnergy = i, energy
		}
	}
	if bestIdx < 0 {
		return
	}
	r := pt.replicas[bestIdx]
	sol := r.CurrentSolution()
	if sol == nil {
		return
	}
	pt.UpdateCurrentAndBestSolution(sol.Copy(), r.CurrentEvaluation(), r.CurrentValidation())
}
