// Package subset implements the subset-selection solution family for
// the descent framework: solutions that select a subset of an integer
// ID universe, reversible moves over those subsets, and neighbourhoods
// that generate them.
//
// 🚀 What is subset?
//
//	Everything needed to run a local search over "pick k out of n":
//	  • Solution        — a selected subset of a fixed ID universe
//	  • Addition / Deletion / Swap / General moves — all undoable
//	  • SingleSwap, MultiSwap, SinglePerturbation neighbourhoods
//	  • A fixed-size subset problem helper
//
// ✨ Highlights
//
//   - Fixed IDs: any neighbourhood can be told to never touch a set of
//     IDs, pinning them in or out of the selection
//   - MultiSwap enumerates all simultaneous k'-swaps for k' ≤ k through
//     a lazy combination iterator (the move count grows very fast; see
//     MultiSwapNeighbourhood for the exact formula)
//   - SinglePerturbation honours minimum and maximum subset sizes and
//     picks the move type by roulette over the per-type move counts
//
// Moves carry a value identity (Hash and Equal over their canonical ID
// content), so the engine's evaluated-move cache can memoize them.
//
// All randomized operations take an explicit *rand.Rand; the package
// never touches global randomness.
package subset
