// Evaluated-move caches: memoization of move evaluations and
// validations keyed by the move's value identity.
package search

import "github.com/katalvlaran/descent/core"

// EvaluatedMoveCache memoizes the evaluation and validation of moves
// for the current solution of a search. The cache is cleared whenever
// the current solution changes.
//
// Caches key by Move.Hash and verify with Move.Equal, so a hash
// collision between non-equal moves may evict an entry but can never
// return a wrong value.
//
// Implementations are not required to be safe for concurrent use; each
// search owns its cache and accesses it from its worker goroutine only.
type EvaluatedMoveCache interface {
	// Evaluation returns the cached evaluation of m, if any.
	Evaluation(m core.Move) (core.Evaluation, bool)

	// Validation returns the cached validation of m, if any.
	Validation(m core.Move) (core.Validation, bool)

	// CacheEvaluation stores the evaluation of m.
	CacheEvaluation(m core.Move, e core.Evaluation)

	// CacheValidation stores the validation of m.
	CacheValidation(m core.Move, v core.Validation)

	// Clear drops all entries. Clearing an empty cache is a no-op.
	Clear()
}

// SingleEntryCache remembers the evaluation and validation of exactly
// one move. Caching a different move discards the previous entry
// entirely. This is the default cache: it costs almost nothing and
// covers the common validate-then-evaluate-then-accept pattern.
type SingleEntryCache struct {
	move core.Move
	eval core.Evaluation
	val  core.Validation
}

// NewSingleEntryCache creates an empty single-entry cache.
func NewSingleEntryCache() *SingleEntryCache { return &SingleEntryCache{} }

// Evaluation returns the cached evaluation of m, if m is the
// remembered move.
func (c *SingleEntryCache) Evaluation(m core.Move) (core.Evaluation, bool) {
	if c.move == nil || !c.move.Equal(m) || c.eval == nil {
		return nil, false
	}

	return c.eval, true
}

// Validation returns the cached validation of m, if m is the
// remembered move.
func (c *SingleEntryCache) Validation(m core.Move) (core.Validation, bool) {
	if c.move == nil || !c.move.Equal(m) || c.val == nil {
		return nil, false
	}

	return c.val, true
}

// CacheEvaluation stores the evaluation of m, discarding any entry for
// a different move.
func (c *SingleEntryCache) CacheEvaluation(m core.Move, e core.Evaluation) {
	if c.move == nil || !c.move.Equal(m) {
		c.move, c.val = m, nil
	}
	c.eval = e
}

// CacheValidation stores the validation of m, discarding any entry for
// a different move.
func (c *SingleEntryCache) CacheValidation(m core.Move, v core.Validation) {
	if c.move == nil || !c.move.Equal(m) {
		c.move, c.eval = m, nil
	}
	c.val = v
}

// Clear forgets the remembered move.
func (c *SingleEntryCache) Clear() {
	c.move, c.eval, c.val = nil, nil, nil
}

// UnboundedCache remembers every cached move until Clear. Entries are
// keyed by the move hash; a collision overwrites the colliding entry.
//
// Memory grows with the number of distinct moves evaluated between
// solution changes, so this cache suits searches that enumerate a full
// neighbourhood per step and would otherwise evaluate many moves twice.
type UnboundedCache struct {
	entries map[uint64]*cacheEntry
}

type cacheEntry struct {
	move core.Move
	eval core.Evaluation
	val  core.Validation
}

// NewUnboundedCache creates an empty unbounded cache.
func NewUnboundedCache() *UnboundedCache {
	return &UnboundedCache{entries: make(map[uint64]*cacheEntry)}
}

// Evaluation returns the cached evaluation of m, if any.
func (c *UnboundedCache) Evaluation(m core.Move) (core.Evaluation, bool) {
	e, ok := c.entries[m.Hash()]
	if !ok || !e.move.Equal(m) || e.eval == nil {
		return nil, false
	}

	return e.eval, true
}

// Validation returns the cached validation of m, if any.
func (c *UnboundedCache) Validation(m core.Move) (core.Validation, bool) {
	e, ok := c.entries[m.Hash()]
	if !ok || !e.move.Equal(m) || e.val == nil {
		return nil, false
	}

	return e.val, true
}

// CacheEvaluation stores the evaluation of m.
func (c *UnboundedCache) CacheEvaluation(m core.Move, e core.Evaluation) {
	c.entry(m).eval = e
}

// CacheValidation stores the validation of m.
func (c *UnboundedCache) CacheValidation(m core.Move, v core.Validation) {
	c.entry(m).val = v
}

func (c *UnboundedCache) entry(m core.Move) *cacheEntry {
	h := m.Hash()
	e, ok := c.entries[h]
	if !ok || !e.move.Equal(m) {
		e = &cacheEntry{move: m}
		c.entries[h] = e
	}

	return e
}

// Clear drops all entries.
func (c *UnboundedCache) Clear() {
	c.entries = make(map[uint64]*cacheEntry)
}
