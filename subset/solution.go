// This file declares the subset Solution type and the package's
// sentinel errors.
//
// Errors:
//
//	ErrEmptyUniverse   - a solution cannot be created over an empty universe.
//	ErrDuplicateID     - the universe contains a repeated ID.
//	ErrUnknownID       - an ID outside the universe was selected or deselected.
//	ErrBadSubsetSize   - an invalid subset size (or size bound) was supplied.
//	ErrBadMaxSwaps     - a non-positive maximum number of swaps was supplied.
//	ErrOptionViolation - an invalid neighbourhood option was supplied.
package subset

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/katalvlaran/descent/core"
)

// Sentinel errors for subset inputs.
var (
	// ErrEmptyUniverse indicates an attempt to build a solution over
	// an empty ID universe.
	ErrEmptyUniverse = errors.New("subset: empty ID universe")

	// ErrDuplicateID indicates a repeated ID in the universe.
	ErrDuplicateID = errors.New("subset: duplicate ID in universe")

	// ErrUnknownID indicates an ID that is not part of the universe.
	ErrUnknownID = errors.New("subset: ID not in universe")

	// ErrBadSubsetSize indicates an invalid subset size or size bound.
	ErrBadSubsetSize = errors.New("subset: invalid subset size")

	// ErrBadMaxSwaps indicates a non-positive maximum number of
	// simultaneous swaps.
	ErrBadMaxSwaps = errors.New("subset: maximum number of swaps must be positive")

	// ErrOptionViolation is returned when an invalid neighbourhood
	// option is supplied.
	ErrOptionViolation = errors.New("subset: invalid option supplied")
)

// Solution selects a subset of a fixed universe of integer IDs.
//
// The universe is immutable after construction and shared between
// copies; only the selection is copied. Solution implements
// core.Solution.
type Solution struct {
	universe []int // sorted, immutable, shared between copies
	index    map[int]struct{}
	selected map[int]struct{}
}

// NewSolution creates a solution over the given universe with an empty
// selection. The universe must be non-empty and free of duplicates;
// its order does not matter.
func NewSolution(universe []int) (*Solution, error) {
	if len(universe) == 0 {
		return nil, ErrEmptyUniverse
	}
	sorted := append([]int(nil), universe...)
	sort.Ints(sorted)
	index := make(map[int]struct{}, len(sorted))
	for i, id := range sorted {
		if i > 0 && sorted[i-1] == id {
			return nil, ErrDuplicateID
		}
		index[id] = struct{}{}
	}

	return &Solution{
		universe: sorted,
		index:    index,
		selected: make(map[int]struct{}),
	}, nil
}

// Select adds id to the selection. Selecting an already selected ID is
// a no-op. Returns ErrUnknownID for IDs outside the universe.
func (s *Solution) Select(id int) error {
	if _, ok := s.index[id]; !ok {
		return ErrUnknownID
	}
	s.selected[id] = struct{}{}

	return nil
}

// Deselect removes id from the selection. Deselecting an unselected ID
// is a no-op. Returns ErrUnknownID for IDs outside the universe.
func (s *Solution) Deselect(id int) error {
	if _, ok := s.index[id]; !ok {
		return ErrUnknownID
	}
	delete(s.selected, id)

	return nil
}

// Selected reports whether id is currently selected.
func (s *Solution) Selected(id int) bool {
	_, ok := s.selected[id]

	return ok
}

// NumSelected returns the current selection size.
func (s *Solution) NumSelected() int { return len(s.selected) }

// NumUnselected returns the number of universe IDs not selected.
func (s *Solution) NumUnselected() int { return len(s.universe) - len(s.selected) }

// NumIDs returns the universe size.
func (s *Solution) NumIDs() int { return len(s.universe) }

// SelectedIDs returns the selected IDs in ascending order. The slice
// is a fresh copy.
func (s *Solution) SelectedIDs() []int {
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// UnselectedIDs returns the unselected universe IDs in ascending
// order. The slice is a fresh copy.
func (s *Solution) UnselectedIDs() []int {
	ids := make([]int, 0, len(s.universe)-len(s.selected))
	for _, id := range s.universe {
		if _, ok := s.selected[id]; !ok {
			ids = append(ids, id)
		}
	}

	return ids
}

// AllIDs returns the full universe in ascending order. The slice is a
// fresh copy.
func (s *Solution) AllIDs() []int {
	return append([]int(nil), s.universe...)
}

// Copy returns a deep copy sharing the immutable universe.
func (s *Solution) Copy() core.Solution {
	selected := make(map[int]struct{}, len(s.selected))
	for id := range s.selected {
		selected[id] = struct{}{}
	}

	return &Solution{universe: s.universe, index: s.index, selected: selected}
}

// Equal reports whether other is a subset solution over the same
// universe with the same selection.
func (s *Solution) Equal(other core.Solution) bool {
	o, ok := other.(*Solution)
	if !ok || len(o.universe) != len(s.universe) || len(o.selected) != len(s.selected) {
		return false
	}
	for i, id := range s.universe {
		if o.universe[i] != id {
			return false
		}
	}
	for id := range s.selected {
		if _, sel := o.selected[id]; !sel {
			return false
		}
	}

	return true
}

// RandomSolution creates a solution over the universe with a uniformly
// random selection of the given size.
func RandomSolution(universe []int, size int, rng *rand.Rand) (*Solution, error) {
	s, err := NewSolution(universe)
	if err != nil {
		return nil, err
	}
	if size < 0 || size > len(s.universe) {
		return nil, ErrBadSubsetSize
	}
	for _, id := range randomSample(s.universe, size, rng) {
		s.selected[id] = struct{}{}
	}

	return s, nil
}
