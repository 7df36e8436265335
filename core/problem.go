// This file implements GenericProblem, the standard composition of one
// objective with any number of mandatory and penalizing constraints,
// including incremental (delta) evaluation and validation of moves with
// an optional strict cross-check against full recomputation.
package core

import (
	"fmt"
	"math"
	"math/rand"
)

// RandomSolutionFactory produces a fresh random solution using the
// supplied source of randomness.
type RandomSolutionFactory func(rng *rand.Rand) Solution

// ProblemOption configures a GenericProblem at construction time.
type ProblemOption func(*problemOptions)

// problemOptions carries configuration plus a recorded error so that
// an invalid option surfaces as ErrOptionViolation from the
// constructor instead of being silently ignored.
type problemOptions struct {
	mandatory  []Constraint
	penalizing []PenalizingConstraint
	strict     bool
	tolerance  float64
	err        error
}

// WithMandatoryConstraint registers a constraint that gates the
// validation of solutions and moves. A nil constraint is an option
// violation.
func WithMandatoryConstraint(c Constraint) ProblemOption {
	return func(o *problemOptions) {
		if c == nil {
			o.err = fmt.Errorf("%w: nil mandatory constraint", ErrOptionViolation)

			return
		}
		o.mandatory = append(o.mandatory, c)
	}
}

// WithPenalizingConstraint registers a constraint whose penalties are
// folded into penalized evaluations. Penalizing constraints never gate
// validation. A nil constraint is an option violation.
func WithPenalizingConstraint(c PenalizingConstraint) ProblemOption {
	return func(o *problemOptions) {
		if c == nil {
			o.err = fmt.Errorf("%w: nil penalizing constraint", ErrOptionViolation)

			return
		}
		o.penalizing = append(o.penalizing, c)
	}
}

// WithStrictDeltas enables cross-checking of every delta evaluation
// and delta validation against full recomputation, within the given
// tolerance. A negative tolerance is an option violation; pass
// DefaultDeltaTolerance for the standard setting.
func WithStrictDeltas(tolerance float64) ProblemOption {
	return func(o *problemOptions) {
		if tolerance < 0 {
			o.err = fmt.Errorf("%w: negative strict-delta tolerance %g", ErrOptionViolation, tolerance)

			return
		}
		o.strict = true
		o.tolerance = tolerance
	}
}

// GenericProblem composes one Objective with a set of mandatory and
// penalizing constraints over an arbitrary solution type.
//
// Evaluations are penalized whenever penalizing constraints are
// registered: the total penalty is added to the objective value when
// minimizing and subtracted when maximizing. Validations aggregate the
// mandatory constraints only.
//
// Move evaluation uses the objective's DeltaObjective fast path when
// available and falls back to apply, evaluate, undo otherwise; move
// validation does the same per DeltaConstraint. GenericProblem is safe
// for concurrent use as long as distinct goroutines evaluate distinct
// solutions.
type GenericProblem struct {
	objective  Objective
	mandatory  []Constraint
	penalizing []PenalizingConstraint
	random     RandomSolutionFactory
	strict     bool
	tolerance  float64
}

// NewGenericProblem builds a problem from an objective and a random
// solution factory, applying any options. It returns
// ErrOptionViolation when the objective or factory is nil or when an
// option is invalid.
func NewGenericProblem(obj Objective, random RandomSolutionFactory, opts ...ProblemOption) (*GenericProblem, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: nil objective", ErrOptionViolation)
	}
	if random == nil {
		return nil, fmt.Errorf("%w: nil random solution factory", ErrOptionViolation)
	}

	options := problemOptions{tolerance: DefaultDeltaTolerance}
	for _, opt := range opts {
		opt(&options)
	}
	if options.err != nil {
		return nil, options.err
	}

	return &GenericProblem{
		objective:  obj,
		mandatory:  options.mandatory,
		penalizing: options.penalizing,
		random:     random,
		strict:     options.strict,
		tolerance:  options.tolerance,
	}, nil
}

// Minimizing reports the sense of the underlying objective.
func (p *GenericProblem) Minimizing() bool { return p.objective.Minimizing() }

// RandomSolution creates a new random solution using the supplied
// source of randomness.
func (p *GenericProblem) RandomSolution(rng *rand.Rand) Solution { return p.random(rng) }

// Evaluate computes the evaluation of s. When penalizing constraints
// are registered the result is a PenalizedEvaluation carrying the sum
// of their penalties.
func (p *GenericProblem) Evaluate(s Solution) Evaluation {
	e := p.objective.Evaluate(s)
	if len(p.penalizing) == 0 {
		return e
	}

	return NewPenalizedEvaluation(e, p.totalPenalty(s), p.Minimizing())
}

// Validate checks s against every mandatory constraint and aggregates
// the outcomes into a UnanimousValidation.
func (p *GenericProblem) Validate(s Solution) Validation {
	subs := make([]Validation, len(p.mandatory))
	for i, c := range p.mandatory {
		subs[i] = c.Validate(s)
	}

	return NewUnanimousValidation(subs...)
}

// EvaluateMove computes the evaluation of the neighbour obtained by
// applying m to s, given the current evaluation cur of s. The
// objective's delta fast path is used when available; penalties and
// non-delta objectives are recomputed by applying the move, evaluating
// and undoing it.
func (p *GenericProblem) EvaluateMove(m Move, s Solution, cur Evaluation) (Evaluation, error) {
	e, err := p.evaluateMove(m, s, cur)
	if err != nil {
		return nil, err
	}
	if p.strict {
		full, ferr := p.applyEvaluateUndo(m, s)
		if ferr != nil {
			return nil, ferr
		}
		if math.Abs(e.Value()-full.Value()) > p.tolerance {
			return nil, fmt.Errorf("%w: delta %g vs full %g",
				ErrIncompatibleDeltaEvaluation, e.Value(), full.Value())
		}
	}

	return e, nil
}

func (p *GenericProblem) evaluateMove(m Move, s Solution, cur Evaluation) (Evaluation, error) {
	delta, ok := p.objective.(DeltaObjective)
	if !ok {
		return p.applyEvaluateUndo(m, s)
	}

	// Delta objectives see the raw objective evaluation, not the
	// penalized wrapper.
	inner := cur
	if pe, wrapped := cur.(PenalizedEvaluation); wrapped {
		inner = pe.Inner()
	}
	e, err := delta.EvaluateMove(m, s, inner)
	if err != nil {
		return nil, err
	}
	if len(p.penalizing) == 0 {
		return e, nil
	}

	penalty, err := p.movePenalty(m, s)
	if err != nil {
		return nil, err
	}

	return NewPenalizedEvaluation(e, penalty, p.Minimizing()), nil
}

// ValidateMove computes the validation of the neighbour obtained by
// applying m to s, given the current validation cur of s. Constraints
// implementing DeltaConstraint are validated incrementally; the rest
// by applying the move, validating and undoing it.
func (p *GenericProblem) ValidateMove(m Move, s Solution, cur Validation) (Validation, error) {
	v, err := p.validateMove(m, s, cur)
	if err != nil {
		return nil, err
	}
	if p.strict {
		full, ferr := p.applyValidateUndo(m, s)
		if ferr != nil {
			return nil, ferr
		}
		if v.Passed() != full.Passed() {
			return nil, fmt.Errorf("%w: delta passed=%t vs full passed=%t",
				ErrIncompatibleDeltaValidation, v.Passed(), full.Passed())
		}
	}

	return v, nil
}

func (p *GenericProblem) validateMove(m Move, s Solution, cur Validation) (Validation, error) {
	uv, ok := cur.(UnanimousValidation)
	if !ok || uv.NumSubs() != len(p.mandatory) {
		return p.applyValidateUndo(m, s)
	}

	subs := make([]Validation, len(p.mandatory))
	applied := false
	undo := func() error {
		if !applied {
			return nil
		}
		applied = false

		return m.Undo(s)
	}
	for i, c := range p.mandatory {
		if dc, isDelta := c.(DeltaConstraint); isDelta {
			sub, err := dc.ValidateMove(m, s, uv.Sub(i))
			if err != nil {
				_ = undo()

				return nil, err
			}
			subs[i] = sub

			continue
		}
		if !applied {
			if err := m.Apply(s); err != nil {
				return nil, err
			}
			applied = true
		}
		subs[i] = c.Validate(s)
	}
	if err := undo(); err != nil {
		return nil, err
	}

	return NewUnanimousValidation(subs...), nil
}

// totalPenalty sums the penalties of all penalizing constraints on s.
func (p *GenericProblem) totalPenalty(s Solution) float64 {
	var total float64
	for _, c := range p.penalizing {
		total += c.PenalizedValidate(s).Penalty()
	}

	return total
}

// movePenalty computes the total penalty of the neighbour of s under m
// by applying the move, summing penalties and undoing.
func (p *GenericProblem) movePenalty(m Move, s Solution) (float64, error) {
	if err := m.Apply(s); err != nil {
		return 0, err
	}
	penalty := p.totalPenalty(s)
	if err := m.Undo(s); err != nil {
		return 0, err
	}

	return penalty, nil
}

func (p *GenericProblem) applyEvaluateUndo(m Move, s Solution) (Evaluation, error) {
	if err := m.Apply(s); err != nil {
		return nil, err
	}
	e := p.Evaluate(s)
	if err := m.Undo(s); err != nil {
		return nil, err
	}

	return e, nil
}

func (p *GenericProblem) applyValidateUndo(m Move, s Solution) (Validation, error) {
	if err := m.Apply(s); err != nil {
		return nil, err
	}
	v := p.Validate(s)
	if err := m.Undo(s); err != nil {
		return nil, err
	}

	return v, nil
}
