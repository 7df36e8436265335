// The Search base: status machine, run loop, per-run metadata and
// best-solution tracking shared by every search in the framework.
package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/katalvlaran/descent/core"
)

// Option configures a search at construction time.
type Option func(*config)

type config struct {
	rng         *rand.Rand
	logger      *slog.Logger
	cache       EvaluatedMoveCache
	cacheSet    bool
	checkPeriod time.Duration
	startHooks  []func() error
	stopHooks   []func()
	err         error
}

// WithRNG supplies the search's source of randomness. Passing nil is
// an option violation; omit the option for a time-seeded default.
func WithRNG(rng *rand.Rand) Option {
	return func(c *config) {
		if rng == nil {
			c.err = fmt.Errorf("%w: nil RNG", ErrOptionViolation)

			return
		}
		c.rng = rng
	}
}

// WithLogger supplies the structured logger used for listener-panic
// and checker diagnostics. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			c.err = fmt.Errorf("%w: nil logger", ErrOptionViolation)

			return
		}
		c.logger = logger
	}
}

// WithEvaluatedMoveCache supplies the evaluated-move cache. Passing
// nil disables caching entirely; the default is a SingleEntryCache.
func WithEvaluatedMoveCache(cache EvaluatedMoveCache) Option {
	return func(c *config) {
		c.cache = cache
		c.cacheSet = true
	}
}

// WithStopCriterionCheckPeriod sets the initial checker poll interval.
func WithStopCriterionCheckPeriod(period time.Duration) Option {
	return func(c *config) {
		if period <= 0 {
			c.err = fmt.Errorf("%w: non-positive check period %v", ErrOptionViolation, period)

			return
		}
		c.checkPeriod = period
	}
}

// WithRunStartedHook appends a hook invoked while a run is being
// initialized, after the built-in initialization. An error aborts the
// run.
func WithRunStartedHook(hook func() error) Option {
	return func(c *config) {
		if hook == nil {
			c.err = fmt.Errorf("%w: nil run-started hook", ErrOptionViolation)

			return
		}
		c.startHooks = append(c.startHooks, hook)
	}
}

// WithRunStoppedHook appends a hook invoked while a run is winding
// down, before the search returns to idle.
func WithRunStoppedHook(hook func()) Option {
	return func(c *config) {
		if hook == nil {
			c.err = fmt.Errorf("%w: nil run-stopped hook", ErrOptionViolation)

			return
		}
		c.stopHooks = append(c.stopHooks, hook)
	}
}

// Search is the stateful base of every search in the framework. It
// owns the status machine, the run loop, the per-run metadata, the
// best solution found so far, listeners and stop criteria.
//
// A single mutex guards all status reads and writes; configuration
// mutators assert that the search is idle. Listener callbacks always
// fire outside the lock, on the worker goroutine.
type Search struct {
	name    string
	problem core.Problem
	rng     *rand.Rand
	logger  *slog.Logger

	mu        sync.Mutex
	status    Status
	listeners []*Listener
	criteria  []StopCriterion

	checkPeriod time.Duration
	step        func() error
	startHooks  []func() error
	stopHooks   []func()

	best     core.Solution
	bestEval core.Evaluation
	bestVal  core.Validation

	// per-run metadata, guarded by mu
	ran          bool
	startTime    time.Time
	stopTime     time.Time
	curSteps     int64
	improved     bool
	lastImpTime  time.Time
	lastImpSteps int64
	minDelta     float64
	runCtx       context.Context
}

func newSearch(name string, p core.Problem, cfg *config) *Search {
	s := &Search{
		name:        name,
		problem:     p,
		rng:         cfg.rng,
		logger:      cfg.logger,
		checkPeriod: cfg.checkPeriod,
		minDelta:    InvalidDelta,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.checkPeriod == 0 {
		s.checkPeriod = DefaultStopCriterionCheckPeriod
	}

	return s
}

// Name returns the search name.
func (s *Search) Name() string { return s.name }

// Problem returns the problem being solved.
func (s *Search) Problem() core.Problem { return s.problem }

// RNG returns the search's source of randomness. It must only be used
// from the worker goroutine.
func (s *Search) RNG() *rand.Rand { return s.rng }

// Status returns the current lifecycle status.
func (s *Search) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

func (s *Search) transition(from, to Status) error {
	s.mu.Lock()
	if s.status != from {
		cur := s.status
		s.mu.Unlock()

		return fmt.Errorf("%w: cannot go from %s to %s", ErrBadStatus, cur, to)
	}
	s.status = to
	s.mu.Unlock()
	s.fireStatusChanged(to)

	return nil
}

func (s *Search) tryTransition(from, to Status) bool {
	s.mu.Lock()
	if s.status != from {
		s.mu.Unlock()

		return false
	}
	s.status = to
	s.mu.Unlock()
	s.fireStatusChanged(to)

	return true
}

// Stop requests termination of the current run: an initializing or
// running search moves to terminating, anything else is a no-op. Stop
// is idempotent and safe to call from any goroutine.
func (s *Search) Stop() {
	s.mu.Lock()
	if s.status != StatusInitializing && s.status != StatusRunning {
		s.mu.Unlock()

		return
	}
	s.status = StatusTerminating
	s.mu.Unlock()
	s.fireStatusChanged(StatusTerminating)
}

// Dispose permanently retires an idle search. A disposed search can
// never run again.
func (s *Search) Dispose() error {
	return s.transition(StatusIdle, StatusDisposed)
}

// Start runs the search on the calling goroutine until a stop
// criterion fires, Stop is called, a step fails, or ctx is cancelled.
// Cancellation surfaces as ErrInterrupted. After Start returns the
// search is idle again and may be restarted.
func (s *Search) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.transition(StatusIdle, StatusInitializing); err != nil {
		return err
	}
	s.mu.Lock()
	s.resetRunMetadata()
	s.runCtx = ctx
	s.mu.Unlock()

	s.fireStarted()

	var runErr error
	for _, hook := range s.startHooks {
		if err := hook(); err != nil {
			runErr = err
			s.Stop()

			break
		}
	}

	join := s.startChecker()

	if runErr == nil && s.tryTransition(StatusInitializing, StatusRunning) {
		s.mu.Lock()
		s.ran = true
		s.startTime = time.Now()
		s.mu.Unlock()

		for s.Status() == StatusRunning {
			if err := ctx.Err(); err != nil {
				runErr = fmt.Errorf("%w: %v", ErrInterrupted, err)
				s.Stop()

				break
			}
			if err := s.step(); err != nil {
				runErr = err
				s.Stop()

				break
			}
			s.completeStep()
		}
	}

	s.Stop()
	for _, hook := range s.stopHooks {
		hook()
	}
	join()

	s.mu.Lock()
	s.stopTime = time.Now()
	s.runCtx = nil
	s.mu.Unlock()

	if err := s.transition(StatusTerminating, StatusIdle); err != nil && runErr == nil {
		runErr = err
	}
	s.fireStopped()

	return runErr
}

// resetRunMetadata must be called with mu held, during initialization.
func (s *Search) resetRunMetadata() {
	s.curSteps = 0
	s.startTime = time.Time{}
	s.stopTime = time.Time{}
	s.improved = false
	s.lastImpTime = time.Time{}
	s.lastImpSteps = 0
	s.minDelta = InvalidDelta
}

func (s *Search) completeStep() {
	s.mu.Lock()
	s.curSteps++
	n := s.curSteps
	s.mu.Unlock()
	s.fireStepCompleted(n)
}

// runContext returns the context of the current run, or nil outside a
// run.
func (s *Search) runContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runCtx
}

// Steps returns the number of steps completed in the current (or last)
// run, or InvalidStepCount while initializing.
func (s *Search) Steps() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInitializing {
		return InvalidStepCount
	}

	return s.curSteps
}

// Runtime returns the wall-clock runtime of the current (or last) run,
// or InvalidTimeSpan while initializing or before the first run.
func (s *Search) Runtime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInitializing || s.startTime.IsZero() {
		return InvalidTimeSpan
	}
	if s.status == StatusRunning || s.status == StatusTerminating {
		return time.Since(s.startTime)
	}

	return s.stopTime.Sub(s.startTime)
}

// StepsWithoutImprovement returns the number of steps since the best
// solution last improved, or InvalidStepCount while initializing.
func (s *Search) StepsWithoutImprovement() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInitializing {
		return InvalidStepCount
	}
	if !s.improved {
		return s.curSteps
	}

	return s.curSteps - s.lastImpSteps
}

// TimeWithoutImprovement returns the time elapsed since the best
// solution last improved, or InvalidTimeSpan while initializing or
// before the first run.
func (s *Search) TimeWithoutImprovement() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInitializing {
		return InvalidTimeSpan
	}
	anchor := s.startTime
	if s.improved {
		anchor = s.lastImpTime
	}
	if !s.ran || anchor.IsZero() {
		return InvalidTimeSpan
	}
	if s.status == StatusRunning || s.status == StatusTerminating {
		return time.Since(anchor)
	}

	return s.stopTime.Sub(anchor)
}

// MinDelta returns the smallest improvement in best-solution value
// observed during the current (or last) run, or InvalidDelta while
// initializing or when no improvement has been observed yet.
func (s *Search) MinDelta() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInitializing {
		return InvalidDelta
	}

	return s.minDelta
}

// BestSolution returns the best solution found so far, or nil. The
// returned solution is the search's stored copy and must be treated as
// read-only; Copy it before mutating.
func (s *Search) BestSolution() core.Solution {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.best
}

// BestEvaluation returns the evaluation of the best solution, or nil.
func (s *Search) BestEvaluation() core.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.bestEval
}

// BestValidation returns the validation of the best solution, or nil.
func (s *Search) BestValidation() core.Validation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.bestVal
}

// UpdateBestSolution replaces the best solution when sol passes
// validation and improves on the current best (or no best exists yet).
// The solution is deep-copied; NewBestSolution listeners fire on
// success. It reports whether the best solution was updated.
func (s *Search) UpdateBestSolution(sol core.Solution, e core.Evaluation, v core.Validation) bool {
	if sol == nil {
		return false
	}
	if v != nil && !v.Passed() {
		return false
	}

	s.mu.Lock()
	var delta float64
	if s.bestEval != nil {
		delta = core.Delta(e, s.bestEval, s.problem.Minimizing())
		if delta <= 0 {
			s.mu.Unlock()

			return false
		}
	}
	best := sol.Copy()
	s.best, s.bestEval, s.bestVal = best, e, v
	if delta > 0 && (s.minDelta == InvalidDelta || delta < s.minDelta) {
		s.minDelta = delta
	}
	s.improved = true
	s.lastImpTime = time.Now()
	s.lastImpSteps = s.curSteps
	s.mu.Unlock()

	s.fireNewBestSolution(best, e, v)

	return true
}

// initRun prepares a replica search for coordinated execution: it is
// moved through initialization straight to running, without a checker
// goroutine of its own.
func (s *Search) initRun() error {
	if err := s.transition(StatusIdle, StatusInitializing); err != nil {
		return err
	}
	s.mu.Lock()
	s.resetRunMetadata()
	s.mu.Unlock()
	s.fireStarted()
	for _, hook := range s.startHooks {
		if err := hook(); err != nil {
			return err
		}
	}
	if err := s.transition(StatusInitializing, StatusRunning); err != nil {
		return err
	}
	s.mu.Lock()
	s.ran = true
	s.startTime = time.Now()
	s.mu.Unlock()

	return nil
}

// runStep executes one step of a coordinated replica.
func (s *Search) runStep() error {
	if err := s.step(); err != nil {
		return err
	}
	s.completeStep()

	return nil
}

// finishRun winds a coordinated replica down to idle.
func (s *Search) finishRun() {
	s.Stop()
	for _, hook := range s.stopHooks {
		hook()
	}
	s.mu.Lock()
	s.stopTime = time.Now()
	s.mu.Unlock()
	if s.tryTransition(StatusTerminating, StatusIdle) {
		s.fireStopped()
	}
}
