// Package search implements the engine of the descent framework: the
// search lifecycle, the run loop, listeners, stop criteria,
// evaluated-move caching and the primitives that concrete strategies
// (package algo) are assembled from.
//
// 🚀 What is search?
//
//	The machinery between a Problem and a strategy:
//	  • Search               — status machine, run loop, best tracking
//	  • LocalSearch          — adds the current solution
//	  • NeighbourhoodSearch  — adds the neighbourhood, the cache and
//	    the move primitives (EvaluateMove, BestMove, Accept, ...)
//	  • ReplicaCoordinator   — batched concurrent sub-searches
//
// ✨ Highlights
//
//   - Strict lifecycle: Idle → Initializing → Running → Terminating →
//     Idle, with every illegal transition rejected (ErrBadStatus)
//   - Stop criteria polled by a dedicated checker goroutine; Stop is
//     idempotent and callable from any goroutine
//   - Listener callbacks with per-listener panic isolation
//   - Evaluated-move caching keyed by move value identity
//
// A search runs on the goroutine that calls Start(ctx); cancelling the
// context interrupts the run and Start returns ErrInterrupted. While a
// run is being initialized, all per-run metadata getters return the
// Invalid* sentinels.
//
// Strategies plug in a StepFunc and drive the primitives; see package
// algo for the shipped strategies.
package search
