// Package descent is your toolkit for local-search optimization —
// from core solution/move primitives to tabu search and parallel
// tempering over pluggable neighbourhoods.
//
// 🚀 What is descent?
//
//	A modern, thread-safe metaheuristics library that brings together:
//		• Core contracts: solutions, moves, objectives, constraints, validations
//		• Subset selection: fixed- and variable-size selections with swap neighbourhoods
//		• Search engine: status machine, listeners, stop criteria, move caches
//		• Descent strategies: random descent, steepest descent
//		• Stochastic strategies: Metropolis, tabu search, parallel tempering
//		• Replica coordination: concurrent sub-searches with state exchange
//
// ✨ Why choose descent?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Rock-solid guarantees – one status machine, explicit errors, safe listeners
//   - Deterministic when you want it – seedable RNG on every search
//   - Extensible – plug in objectives, neighbourhoods, caches and tabu memories
//
// Under the hood, everything is organized under four subpackages:
//
//	core/   — Solution, Move, Objective, Constraint, Evaluation & Validation contracts
//	subset/ — subset solutions, swap moves and their neighbourhoods
//	search/ — the Search engine, NeighbourhoodSearch, caches, listeners, stop criteria
//	algo/   — RandomDescent, SteepestDescent, Metropolis, TabuSearch, ParallelTempering
//
// Quick ASCII example:
//
//	current ──move──▶ neighbour
//	   ▲                  │
//	   └──── accept? ─────┘
//
//	every step proposes a neighbour, evaluates it, and accepts or
//	rejects it; the best solution seen is tracked on the side.
//
// Every subpackage ships runnable Example functions in its
// example_test.go.
//
//	go get github.com/katalvlaran/descent
package descent
