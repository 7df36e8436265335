// ReplicaCoordinator: batched concurrent execution of sub-searches on
// behalf of a multi-replica strategy.
package search

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/descent/core"
)

// Replica is a sub-search that a ReplicaCoordinator can drive. It is
// satisfied by any type embedding *NeighbourhoodSearch; the lifecycle
// methods are deliberately unexported so that replicas can only be
// driven through a coordinator.
type Replica interface {
	// Status returns the replica's lifecycle status.
	Status() Status

	// NumAcceptedMoves returns the replica's accepted-move counter.
	NumAcceptedMoves() int64

	// NumRejectedMoves returns the replica's rejected-move counter.
	NumRejectedMoves() int64

	initRun() error
	runStep() error
	finishRun()
	currentState() (core.Solution, core.Evaluation, core.Validation)
	adoptState(sol core.Solution, e core.Evaluation, v core.Validation)
}

// ReplicaCoordinator runs a set of replica searches in lockstep
// batches on behalf of an owning search: each batch executes every
// replica's step loop on its own goroutine until the requested number
// of steps is done or the owner stops running, then waits for all of
// them. Between batches the owner may exchange replica states.
type ReplicaCoordinator struct {
	owner *Search
	subs  []Replica
}

// NewReplicaCoordinator creates a coordinator driving subs on behalf
// of owner.
func NewReplicaCoordinator(owner *Search, subs ...Replica) *ReplicaCoordinator {
	return &ReplicaCoordinator{owner: owner, subs: subs}
}

// NumReplicas returns the number of coordinated replicas.
func (c *ReplicaCoordinator) NumReplicas() int { return len(c.subs) }

// Replica returns the i-th coordinated replica.
func (c *ReplicaCoordinator) Replica(i int) Replica { return c.subs[i] }

// StartRun moves every replica through initialization into the
// running state. Replicas run without checker goroutines of their own;
// they stop when the owner does.
func (c *ReplicaCoordinator) StartRun() error {
	for _, r := range c.subs {
		if err := r.initRun(); err != nil {
			return err
		}
	}

	return nil
}

// RunBatch executes up to steps steps of every replica concurrently
// and waits for all replicas to pause. A replica pauses early when it
// stops itself, the owner leaves the running state, or the owner's run
// context is cancelled; cancellation surfaces as ErrInterrupted after
// all replica goroutines have drained.
func (c *ReplicaCoordinator) RunBatch(steps int64) error {
	ctx := c.owner.runContext()

	var wg sync.WaitGroup
	errs := make([]error, len(c.subs))
	for i, r := range c.subs {
		wg.Add(1)
		go func(i int, r Replica) {
			defer wg.Done()
			for n := int64(0); n < steps; n++ {
				if ctx != nil && ctx.Err() != nil {
					return
				}
				if c.owner.Status() != StatusRunning || r.Status() != StatusRunning {
					return
				}
				if err := r.runStep(); err != nil {
					errs[i] = err

					return
				}
			}
		}(i, r)
	}
	wg.Wait()

	if ctx != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// SwapStates exchanges the current solutions (with their evaluations
// and validations) of replicas i and j. Must only be called between
// batches.
func (c *ReplicaCoordinator) SwapStates(i, j int) {
	si, ei, vi := c.subs[i].currentState()
	sj, ej, vj := c.subs[j].currentState()
	c.subs[i].adoptState(sj, ej, vj)
	c.subs[j].adoptState(si, ei, vi)
}

// FinishRun winds every replica down to idle.
func (c *ReplicaCoordinator) FinishRun() {
	for _, r := range c.subs {
		r.finishRun()
	}
}
