package jwalk

import (
	"fmt"
)

type createOptions struct {
	existsOK                bool
	canBreakStructure       bool
	canCreateEmptyListItems bool
	emptyListItem           func() Value
}

// CreateOption configures [Walker.CreatePath].
type CreateOption func(*createOptions)

// ExistsOK controls what happens if the path already exists. If true (the default),
// CreatePath does nothing. If false, CreatePath fails with ErrExists.
func ExistsOK(ok bool) CreateOption {
	return func(o *createOptions) { o.existsOK = ok }
}

// CanBreakStructure allows CreatePath to replace an existing value with an empty
// object or array if the path continues with a field name or index that the value
// can not hold. Defaults to true. Data replaced this way is lost.
// If false, CreatePath fails with ErrStructure instead.
func CanBreakStructure(ok bool) CreateOption {
	return func(o *createOptions) { o.canBreakStructure = ok }
}

// CanCreateEmptyListItems allows CreatePath to grow an array until the index
// in the path is valid. Defaults to true. If false, CreatePath fails with ErrIndexRange.
func CanCreateEmptyListItems(ok bool) CreateOption {
	return func(o *createOptions) { o.canCreateEmptyListItems = ok }
}

// EmptyListItemFactory sets the function that produces the values used to grow arrays.
// Defaults to producing null.
func EmptyListItemFactory(factory func() Value) CreateOption {
	return func(o *createOptions) { o.emptyListItem = factory }
}

// CreatePath creates every object and array needed for the path of this walker
// to exist in the tree of its root, then stores value at the end of the path.
// Afterwards the walker is attached to the newly created location.
//
// Walking the path from the root, a field name requires an object and an index
// requires an array with enough elements. Containers of the wrong kind are replaced
// and arrays are grown as permitted by the options. Everything below a newly
// created container is new data and is always allowed to be replaced.
// Negative indices are never valid.
//
// Failures are reported as a [*PathError].
func (w *Walker) CreatePath(value Value, opts ...CreateOption) error {
	options := createOptions{
		existsOK:                true,
		canBreakStructure:       true,
		canCreateEmptyListItems: true,
		emptyListItem:           func() Value { return Null{} },
	}

	for _, opt := range opts {
		opt(&options)
	}

	path := w.Path()

	if w.Exists() {
		if options.existsOK {
			return nil
		}

		return &PathError{Op: "create", Path: path, Err: ErrExists}
	}

	canBreak := options.canBreakStructure

	current := w.Root()
	for idx, key := range path {
		fail := func(err error) error {
			return &PathError{Op: "create", Path: path[:idx+1], Err: err}
		}

		if name, ok := key.Field(); ok {
			object, isObject := current.value.(*Object)
			if !isObject {
				if !canBreak {
					return fail(fmt.Errorf("%w: field %q needs an object, found %s", ErrStructure, name, kindOf(current.value)))
				}

				object = NewObject()
				if err := current.SetValue(object); err != nil {
					return fail(err)
				}
			}

			if !object.Has(name) {
				// everything from here on is created by us
				canBreak = true
			}
		} else {
			index, _ := key.Index()
			if index < 0 {
				return fail(ErrNegativeIndex)
			}

			array, isArray := current.value.(*Array)
			if !isArray {
				if !canBreak {
					return fail(fmt.Errorf("%w: index %d needs an array, found %s", ErrStructure, index, kindOf(current.value)))
				}

				array = NewArray()
				if err := current.SetValue(array); err != nil {
					return fail(err)
				}
			}

			if index >= array.Len() {
				if !options.canCreateEmptyListItems {
					return fail(fmt.Errorf("%w: index %d, length %d", ErrIndexRange, index, array.Len()))
				}

				for array.Len() <= index {
					array.Items = append(array.Items, options.emptyListItem())
				}

				canBreak = true
			}
		}

		current = current.step(key)
	}

	w.parent, w.key = current.parent, current.key
	return w.SetValue(value)
}
