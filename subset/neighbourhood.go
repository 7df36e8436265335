// Neighbourhood options shared by the subset neighbourhoods, and the
// fixed-ID candidate extraction they all build on.
package subset

import "fmt"

// Option configures a subset neighbourhood at construction time.
type Option func(*options)

type options struct {
	fixed map[int]struct{}
	err   error
}

// WithFixedIDs pins the given IDs: no generated move will ever add or
// remove a fixed ID, whether it is currently selected or not.
func WithFixedIDs(ids ...int) Option {
	return func(o *options) {
		if o.fixed == nil {
			o.fixed = make(map[int]struct{}, len(ids))
		}
		for _, id := range ids {
			o.fixed[id] = struct{}{}
		}
	}
}

func applyOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return options{}, fmt.Errorf("%w: %w", ErrOptionViolation, o.err)
	}

	return o, nil
}

// candidates returns the IDs a neighbourhood may delete (selected and
// not fixed) and add (unselected and not fixed), both in ascending
// order.
func (o options) candidates(s *Solution) (removable, addable []int) {
	for _, id := range s.universe {
		if _, pinned := o.fixed[id]; pinned {
			continue
		}
		if s.Selected(id) {
			removable = append(removable, id)
		} else {
			addable = append(addable, id)
		}
	}

	return removable, addable
}
