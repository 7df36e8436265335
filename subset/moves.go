// This file implements the reversible moves of the subset family:
// addition, deletion, swap, and the general multi-ID move. All moves
// carry a value identity through Hash and Equal.
package subset

import (
	"hash/fnv"
	"sort"

	"github.com/katalvlaran/descent/core"
)

// Move is a subset-specific move exposing the IDs it adds to and
// deletes from the selection. All moves in this package implement it.
type Move interface {
	core.Move

	// AddedIDs returns the IDs the move adds, in ascending order.
	AddedIDs() []int

	// DeletedIDs returns the IDs the move deletes, in ascending order.
	DeletedIDs() []int
}

// move type tags fed into the hash so that, say, adding {3} and
// deleting {3} never collide.
const (
	tagAddition byte = 1
	tagDeletion byte = 2
	tagSwap     byte = 3
	tagGeneral  byte = 4
)

func hashIDs(tag byte, groups ...[]int) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte{tag})
	var buf [8]byte
	for _, ids := range groups {
		_, _ = h.Write([]byte{0xff}) // group separator
		for _, id := range ids {
			v := uint64(int64(id))
			for i := 0; i < 8; i++ {
				buf[i] = byte(v >> (8 * i))
			}
			_, _ = h.Write(buf[:])
		}
	}

	return h.Sum64()
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, id := range a {
		if b[i] != id {
			return false
		}
	}

	return true
}

func asSubsetSolution(s core.Solution) (*Solution, error) {
	sol, ok := s.(*Solution)
	if !ok {
		return nil, core.ErrIncompatibleMove
	}

	return sol, nil
}

// AdditionMove adds one ID to the selection.
type AdditionMove struct {
	id int
}

// NewAdditionMove creates a move adding id.
func NewAdditionMove(id int) AdditionMove { return AdditionMove{id: id} }

// ID returns the added ID.
func (m AdditionMove) ID() int { return m.id }

// AddedIDs returns the single added ID.
func (m AdditionMove) AddedIDs() []int { return []int{m.id} }

// DeletedIDs returns an empty slice.
func (m AdditionMove) DeletedIDs() []int { return nil }

// Apply selects the ID; the ID must be unselected.
func (m AdditionMove) Apply(s core.Solution) error {
	sol, err := asSubsetSolution(s)
	if err != nil {
		return err
	}
	if sol.Selected(m.id) {
		return core.ErrIncompatibleMove
	}

	return sol.Select(m.id)
}

// Undo deselects the ID again.
func (m AdditionMove) Undo(s core.Solution) error {
	sol, err := asSubsetSolution(s)
	if err != nil {
		return err
	}
	if !sol.Selected(m.id) {
		return core.ErrIncompatibleMove
	}

	return sol.Deselect(m.id)
}

// Hash returns the value identity of the move.
func (m AdditionMove) Hash() uint64 { return hashIDs(tagAddition, m.AddedIDs()) }

// Equal reports whether other adds the same ID.
func (m AdditionMove) Equal(other core.Move) bool {
	o, ok := other.(AdditionMove)

	return ok && o.id == m.id
}

// DeletionMove removes one ID from the selection.
type DeletionMove struct {
	id int
}

// NewDeletionMove creates a move deleting id.
func NewDeletionMove(id int) DeletionMove { return DeletionMove{id: id} }

// ID returns the deleted ID.
func (m DeletionMove) ID() int { return m.id }

// AddedIDs returns an empty slice.
func (m DeletionMove) AddedIDs() []int { return nil }

// DeletedIDs returns the single deleted ID.
func (m DeletionMove) DeletedIDs() []int { return []int{m.id} }

// Apply deselects the ID; the ID must be selected.
func (m DeletionMove) Apply(s core.Solution) error {
	sol, err := asSubsetSolution(s)
	if err != nil {
		return err
	}
	if !sol.Selected(m.id) {
		return core.ErrIncompatibleMove
	}

	return sol.Deselect(m.id)
}

// Undo selects the ID again.
func (m DeletionMove) Undo(s core.Solution) error {
	sol, err := asSubsetSolution(s)
	if err != nil {
		return err
	}
	if sol.Selected(m.id) {
		return core.ErrIncompatibleMove
	}

	return sol.Select(m.id)
}

// Hash returns the value identity of the move.
func (m DeletionMove) Hash() uint64 { return hashIDs(tagDeletion, nil, m.DeletedIDs()) }

// Equal reports whether other deletes the same ID.
func (m DeletionMove) Equal(other core.Move) bool {
	o, ok := other.(DeletionMove)

	return ok && o.id == m.id
}

// SwapMove exchanges one selected ID with one unselected ID.
type SwapMove struct {
	add int
	del int
}

// NewSwapMove creates a move selecting add and deselecting del.
func NewSwapMove(add, del int) SwapMove { return SwapMove{add: add, del: del} }

// Added returns the ID the swap selects.
func (m SwapMove) Added() int { return m.add }

// Deleted returns the ID the swap deselects.
func (m SwapMove) Deleted() int { return m.del }

// AddedIDs returns the single added ID.
func (m SwapMove) AddedIDs() []int { return []int{m.add} }

// DeletedIDs returns the single deleted ID.
func (m SwapMove) DeletedIDs() []int { return []int{m.del} }

// Apply performs the exchange; add must be unselected and del
// selected.
func (m SwapMove) Apply(s core.Solution) error {
	sol, err := asSubsetSolution(s)
	if err != nil {
		return err
	}
	if sol.Selected(m.add) || !sol.Selected(m.del) {
		return core.ErrIncompatibleMove
	}
	if err = sol.Select(m.add); err != nil {
		return err
	}

	return sol.Deselect(m.del)
}

// Undo reverses the exchange.
func (m SwapMove) Undo(s core.Solution) error {
	sol, err := asSubsetSolution(s)
	if err != nil {
		return err
	}
	if !sol.Selected(m.add) || sol.Selected(m.del) {
		return core.ErrIncompatibleMove
	}
	if err = sol.Deselect(m.add); err != nil {
		return err
	}

	return sol.Select(m.del)
}

// Hash returns the value identity of the move.
func (m SwapMove) Hash() uint64 { return hashIDs(tagSwap, m.AddedIDs(), m.DeletedIDs()) }

// Equal reports whether other performs the same exchange.
func (m SwapMove) Equal(other core.Move) bool {
	o, ok := other.(SwapMove)

	return ok && o == m
}

// GeneralMove adds and deletes arbitrary disjoint ID sets in a single
// step. It generalizes the three fixed-shape moves; MultiSwap
// neighbourhoods produce GeneralMoves for simultaneous swaps.
type GeneralMove struct {
	add []int // sorted
	del []int // sorted
}

// NewGeneralMove creates a move adding add and deleting del. Both
// slices are copied and sorted.
func NewGeneralMove(add, del []int) GeneralMove {
	a := append([]int(nil), add...)
	d := append([]int(nil), del...)
	sort.Ints(a)
	sort.Ints(d)

	return GeneralMove{add: a, del: d}
}

// AddedIDs returns the added IDs in ascending order.
func (m GeneralMove) AddedIDs() []int { return append([]int(nil), m.add...) }

// DeletedIDs returns the deleted IDs in ascending order.
func (m GeneralMove) DeletedIDs() []int { return append([]int(nil), m.del...) }

// NumAdded returns the number of added IDs.
func (m GeneralMove) NumAdded() int { return len(m.add) }

// NumDeleted returns the number of deleted IDs.
func (m GeneralMove) NumDeleted() int { return len(m.del) }

// Apply selects every added ID and deselects every deleted ID. Added
// IDs must be unselected and deleted IDs selected.
func (m GeneralMove) Apply(s core.Solution) error {
	sol, err := asSubsetSolution(s)
	if err != nil {
		return err
	}
	for _, id := range m.add {
		if sol.Selected(id) {
			return core.ErrIncompatibleMove
		}
	}
	for _, id := range m.del {
		if !sol.Selected(id) {
			return core.ErrIncompatibleMove
		}
	}
	for _, id := range m.add {
		if err = sol.Select(id); err != nil {
			return err
		}
	}
	for _, id := range m.del {
		if err = sol.Deselect(id); err != nil {
			return err
		}
	}

	return nil
}

// Undo reverses every addition and deletion.
func (m GeneralMove) Undo(s core.Solution) error {
	sol, err := asSubsetSolution(s)
	if err != nil {
		return err
	}
	for _, id := range m.add {
		if !sol.Selected(id) {
			return core.ErrIncompatibleMove
		}
	}
	for _, id := range m.del {
		if sol.Selected(id) {
			return core.ErrIncompatibleMove
		}
	}
	for _, id := range m.add {
		if err = sol.Deselect(id); err != nil {
			return err
		}
	}
	for _, id := range m.del {
		if err = sol.Select(id); err != nil {
			return err
		}
	}

	return nil
}

// Hash returns the value identity of the move.
func (m GeneralMove) Hash() uint64 { return hashIDs(tagGeneral, m.add, m.del) }

// Equal reports whether other adds and deletes the same ID sets.
func (m GeneralMove) Equal(other core.Move) bool {
	o, ok := other.(GeneralMove)

	return ok && sameIDs(o.add, m.add) && sameIDs(o.del, m.del)
}
