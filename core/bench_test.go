package core_test

import (
	"testing"

	"github.com/katalvlaran/descent/core"
)

func benchVec(n int) *vecSolution {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = float64(i)
	}

	return &vecSolution{vals: vals}
}

// BenchmarkEvaluateMove_FullFallback measures the apply-evaluate-undo
// path taken when the objective has no incremental evaluation.
func BenchmarkEvaluateMove_FullFallback(b *testing.B) {
	p, err := core.NewGenericProblem(sumObjective{minimize: true}, vecFactory)
	if err != nil {
		b.Fatal(err)
	}
	sol := benchVec(1000)
	cur := p.Evaluate(sol)
	m := incMove{idx: 500, amount: 1}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.EvaluateMove(m, sol, cur); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEvaluateMove_Delta measures the incremental path.
func BenchmarkEvaluateMove_Delta(b *testing.B) {
	obj := deltaSumObjective{sumObjective: sumObjective{minimize: true}}
	p, err := core.NewGenericProblem(obj, vecFactory)
	if err != nil {
		b.Fatal(err)
	}
	sol := benchVec(1000)
	cur := p.Evaluate(sol)
	m := incMove{idx: 500, amount: 1}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.EvaluateMove(m, sol, cur); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkValidate_Unanimous measures full validation with a
// mandatory and a penalizing constraint registered.
func BenchmarkValidate_Unanimous(b *testing.B) {
	p, err := core.NewGenericProblem(sumObjective{minimize: true}, vecFactory,
		core.WithMandatoryConstraint(maxConstraint{bound: 1e9}),
		core.WithPenalizingConstraint(excessPenalty{threshold: 1e9}),
	)
	if err != nil {
		b.Fatal(err)
	}
	sol := benchVec(1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Validate(sol)
	}
}
