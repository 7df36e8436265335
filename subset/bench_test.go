package subset_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/descent/subset"
)

func benchSolution(b *testing.B, n, size int) *subset.Solution {
	b.Helper()
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	sol, err := subset.RandomSolution(ids, size, rand.New(rand.NewSource(42)))
	if err != nil {
		b.Fatal(err)
	}

	return sol
}

// BenchmarkSolution_Copy measures deep-copying a mid-sized selection.
func BenchmarkSolution_Copy(b *testing.B) {
	sol := benchSolution(b, 1000, 100)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sol.Copy()
	}
}

// BenchmarkSingleSwap_AllMoves enumerates the full swap neighbourhood.
func BenchmarkSingleSwap_AllMoves(b *testing.B) {
	sol := benchSolution(b, 200, 50)
	n, err := subset.NewSingleSwapNeighbourhood()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.AllMoves(sol)
	}
}

// BenchmarkSingleSwap_RandomMove samples one swap at a time.
func BenchmarkSingleSwap_RandomMove(b *testing.B) {
	sol := benchSolution(b, 1000, 100)
	n, err := subset.NewSingleSwapNeighbourhood()
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(42))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.RandomMove(sol, rng)
	}
}

// BenchmarkMultiSwap_RandomMove samples a compound swap of up to five
// pairs.
func BenchmarkMultiSwap_RandomMove(b *testing.B) {
	sol := benchSolution(b, 1000, 100)
	n, err := subset.NewMultiSwapNeighbourhood(5)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(42))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.RandomMove(sol, rng)
	}
}

// BenchmarkSwapMove_ApplyUndo measures the apply-undo round trip used
// by full evaluations.
func BenchmarkSwapMove_ApplyUndo(b *testing.B) {
	sol := benchSolution(b, 1000, 100)
	selected := sol.SelectedIDs()
	unselected := sol.UnselectedIDs()
	m := subset.NewSwapMove(unselected[0], selected[0])

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Apply(sol); err != nil {
			b.Fatal(err)
		}
		if err := m.Undo(sol); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMove_Hash measures move hashing, the cache key operation.
func BenchmarkMove_Hash(b *testing.B) {
	m := subset.NewGeneralMove([]int{5, 17, 42, 99}, []int{3, 8, 21, 60})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Hash()
	}
}
