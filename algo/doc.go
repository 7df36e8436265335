// Package algo ships the concrete metaheuristic strategies of the
// descent framework, all assembled from the primitives of package
// search.
//
// 🚀 What is algo?
//
//	Ready-to-run neighbourhood strategies:
//	  • RandomDescent     — accept a random move iff it improves
//	  • SteepestDescent   — best improving move, stop at a local optimum
//	  • Metropolis        — fixed-temperature simulated annealing
//	  • TabuSearch        — recency memory with aspiration
//	  • ParallelTempering — a ladder of Metropolis replicas with
//	    solution swaps between neighbouring temperatures
//
// ✨ Highlights
//
//   - Every strategy embeds *search.NeighbourhoodSearch, so the full
//     engine surface (listeners, stop criteria, metadata, caching) is
//     available on each of them
//   - All parameters are validated at construction; an invalid value
//     surfaces as ErrOptionViolation
//   - Parallel tempering runs its replicas concurrently and folds
//     their accepted/rejected counters into its own
//
// Strategies that exhaust their neighbourhood (steepest descent at a
// local optimum, tabu search with every move tabu) stop themselves;
// the others run until a stop criterion fires, Stop is called, or the
// context passed to Start is cancelled.
package algo
