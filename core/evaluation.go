// This file provides the concrete Evaluation and Validation types used
// by GenericProblem: SimpleEvaluation, PenalizedEvaluation,
// SimpleValidation, UnanimousValidation and SimplePenalizedValidation.
package core

// SimpleEvaluation wraps a plain float64 objective value.
type SimpleEvaluation struct {
	value float64
}

// NewSimpleEvaluation returns an Evaluation carrying the given value.
func NewSimpleEvaluation(value float64) SimpleEvaluation {
	return SimpleEvaluation{value: value}
}

// Value returns the wrapped objective value.
func (e SimpleEvaluation) Value() float64 { return e.value }

// PenalizedEvaluation combines an inner evaluation with the total
// penalty assigned by penalizing constraints. The penalty worsens the
// value according to the objective sense: it is added when minimizing
// and subtracted when maximizing.
type PenalizedEvaluation struct {
	inner      Evaluation
	penalty    float64
	minimizing bool
}

// NewPenalizedEvaluation wraps inner with the given total penalty.
func NewPenalizedEvaluation(inner Evaluation, penalty float64, minimizing bool) PenalizedEvaluation {
	return PenalizedEvaluation{inner: inner, penalty: penalty, minimizing: minimizing}
}

// Value returns the penalized objective value.
func (e PenalizedEvaluation) Value() float64 {
	if e.minimizing {
		return e.inner.Value() + e.penalty
	}

	return e.inner.Value() - e.penalty
}

// Inner returns the evaluation before penalization.
func (e PenalizedEvaluation) Inner() Evaluation { return e.inner }

// Penalty returns the total penalty folded into Value.
func (e PenalizedEvaluation) Penalty() float64 { return e.penalty }

// SimpleValidation wraps a plain pass/fail outcome.
type SimpleValidation struct {
	passed bool
}

// NewSimpleValidation returns a Validation with the given outcome.
func NewSimpleValidation(passed bool) SimpleValidation {
	return SimpleValidation{passed: passed}
}

// Passed reports the wrapped outcome.
func (v SimpleValidation) Passed() bool { return v.passed }

// SimplePenalizedValidation is a pass/fail outcome carrying a
// non-negative penalty. Penalizing constraints return these; the
// penalty is summed into PenalizedEvaluation and the outcome never
// gates Passed of the composed problem validation.
type SimplePenalizedValidation struct {
	passed  bool
	penalty float64
}

// NewSimplePenalizedValidation returns a PenalizedValidation with the
// given outcome and penalty.
func NewSimplePenalizedValidation(passed bool, penalty float64) SimplePenalizedValidation {
	return SimplePenalizedValidation{passed: passed, penalty: penalty}
}

// Passed reports the wrapped outcome.
func (v SimplePenalizedValidation) Passed() bool { return v.passed }

// Penalty returns the penalty assigned by the constraint.
func (v SimplePenalizedValidation) Penalty() float64 { return v.penalty }

// UnanimousValidation aggregates the validations produced by every
// mandatory constraint of a problem. It passes only when all
// sub-validations pass, and retains the sub-validations so that delta
// validation can be computed per constraint.
type UnanimousValidation struct {
	subs []Validation
}

// NewUnanimousValidation aggregates the given sub-validations.
func NewUnanimousValidation(subs ...Validation) UnanimousValidation {
	return UnanimousValidation{subs: subs}
}

// Passed reports whether every sub-validation passed.
func (v UnanimousValidation) Passed() bool {
	for _, sub := range v.subs {
		if !sub.Passed() {
			return false
		}
	}

	return true
}

// Sub returns the i-th sub-validation, in constraint registration
// order.
func (v UnanimousValidation) Sub(i int) Validation { return v.subs[i] }

// NumSubs returns the number of aggregated sub-validations.
func (v UnanimousValidation) NumSubs() int { return len(v.subs) }
