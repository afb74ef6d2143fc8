package jwalk

import (
	"iter"
	"slices"
)

// Handles is implemented by [*Walker] and [*Set], the two things
// that can be combined into a new Set.
type Handles interface {
	handles() []*Walker
}

var (
	_ Handles = (*Walker)(nil)
	_ Handles = (*Set)(nil)
)

func (w *Walker) handles() []*Walker {
	return []*Walker{w}
}

// Combine merges this walker with other into a new [Set]. Combining two walkers
// yields [w, other], combining with a Set yields the members of the set followed
// by w. Walkers holding an error-marker are dropped.
func (w *Walker) Combine(other Handles) *Set {
	var walkers []*Walker
	if otherWalker, ok := other.(*Walker); ok {
		walkers = []*Walker{w, otherWalker}
	} else {
		walkers = append(slices.Clone(other.handles()), w)
	}

	return combined(walkers)
}

// Set is an ordered group of walkers, usually produced by a single fan-out step.
// It supports the navigation vocabulary of [Walker] and applies it to every member.
type Set struct {
	walkers []*Walker
}

// NewSet returns a Set of the given walkers. The walkers are kept as they are,
// including walkers that hold an error-marker.
func NewSet(walkers ...*Walker) *Set {
	return &Set{walkers: walkers}
}

func (s *Set) handles() []*Walker {
	return s.walkers
}

func (s *Set) Len() int {
	return len(s.walkers)
}

// Walkers returns a copy of the members of the set.
func (s *Set) Walkers() []*Walker {
	return slices.Clone(s.walkers)
}

// All yields the members of the set in order.
func (s *Set) All() iter.Seq[*Walker] {
	return slices.Values(s.walkers)
}

// Values returns the values of all members in order.
func (s *Set) Values() []Value {
	values := make([]Value, 0, len(s.walkers))
	for _, walker := range s.walkers {
		values = append(values, walker.value)
	}

	return values
}

// Get steps every member into the field name. Unlike [Walker.Get],
// members for which the step fails are dropped from the result.
func (s *Set) Get(name string) *Set {
	return s.step(Field(name))
}

// At steps every member into the array index. Members for which the step fails are dropped.
func (s *Set) At(index int) *Set {
	return s.step(Index(index))
}

// Step applies every key in order, dropping members whenever a step fails.
func (s *Set) Step(keys ...Key) *Set {
	current := s
	for _, key := range keys {
		current = current.step(key)
	}

	return current
}

func (s *Set) step(key Key) *Set {
	var walkers []*Walker
	for _, walker := range s.walkers {
		next := walker.step(key)
		if isError(next) {
			continue
		}

		walkers = append(walkers, next)
	}

	return NewSet(walkers...)
}

// Split fans out every member with [Walker.Split] and concatenates the results in order.
func (s *Set) Split(selector Selector) *Set {
	selector.mustBeValid()

	var walkers []*Walker
	for _, walker := range s.walkers {
		walkers = append(walkers, walker.Split(selector).walkers...)
	}

	return NewSet(walkers...)
}

// Combine appends the members of other to the members of s.
// Walkers holding an error-marker are dropped.
func (s *Set) Combine(other Handles) *Set {
	walkers := append(slices.Clone(s.walkers), other.handles()...)
	return combined(walkers)
}

func combined(walkers []*Walker) *Set {
	return NewSet(slices.DeleteFunc(walkers, isError)...)
}

func isError(walker *Walker) bool {
	return kindOf(walker.value) == ErrorKind
}
