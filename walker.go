package jwalk

import (
	"fmt"
	"slices"
)

// Walker is a handle to one position in a JSON tree. It knows its value,
// the walker it was created from and the key used to get from there to here.
//
// Navigation never fails loudly. Stepping to a key that does not resolve returns
// a Walker holding an error-marker ([*Error]) as its value. Stepping further from
// such a walker keeps producing error-markers, so long chains can be written
// without checking every intermediate result:
//
//	name := walker.Get("users").At(0).Get("name")
//	if s, ok := name.Value().(jwalk.String); ok {
//	    // ...
//	}
//
// A Walker only points to its parent, never to its children. The tree itself
// is owned by the value of the root walker.
type Walker struct {
	value Value

	// parent and key are either both set or both unset
	parent *Walker
	key    Key
}

// New returns a root walker for value. A nil value is treated as null.
func New(value Value) *Walker {
	if value == nil {
		value = Null{}
	}

	return &Walker{value: value}
}

// FromAny converts v using [ValueOf] and returns a root walker for the result.
func FromAny(v any) (*Walker, error) {
	value, err := ValueOf(v)
	if err != nil {
		return nil, err
	}

	return New(value), nil
}

func (w *Walker) Value() Value {
	return w.value
}

// SetValue replaces the value of this walker. If the walker has a parent,
// the value is also written into the parents container: a missing object field
// is created, an array index must already exist. For a root walker only the
// walker itself is updated.
func (w *Walker) SetValue(value Value) error {
	if value == nil {
		value = Null{}
	}

	if w.parent != nil {
		if err := assign(w.parent.value, w.key, value); err != nil {
			return &PathError{Op: "set", Path: w.Path(), Err: err}
		}
	}

	w.value = value
	return nil
}

// Parent returns the walker this walker was created from.
// Returns ErrRoot for a root walker.
func (w *Walker) Parent() (*Walker, error) {
	if w.parent == nil {
		return nil, ErrRoot
	}

	return w.parent, nil
}

// ParentKey returns the key used to reach this walker from its parent.
// Returns ErrRoot for a root walker.
func (w *Walker) ParentKey() (Key, error) {
	if w.parent == nil {
		return Key{}, ErrRoot
	}

	return w.key, nil
}

func (w *Walker) IsRoot() bool {
	return w.parent == nil
}

func (w *Walker) Root() *Walker {
	root := w
	for root.parent != nil {
		root = root.parent
	}

	return root
}

// Path returns the keys leading from the root walker to this walker.
func (w *Walker) Path() []Key {
	var path []Key
	for current := w; current.parent != nil; current = current.parent {
		path = append(path, current.key)
	}

	slices.Reverse(path)
	return path
}

func (w *Walker) PathString() string {
	return FormatPath(w.Path())
}

// Exists resolves the path of this walker against the current value of the root.
// The cached values of the walkers along the path are not consulted, as the tree
// may have been changed through other walkers since this one was created.
func (w *Walker) Exists() bool {
	current := w.Root().value
	for _, key := range w.Path() {
		next, err := lookup(current, key)
		if err != nil {
			return false
		}

		current = next
	}

	return true
}

// Get steps into the object field name.
func (w *Walker) Get(name string) *Walker {
	return w.step(Field(name))
}

// At steps into the array element at index.
func (w *Walker) At(index int) *Walker {
	return w.step(Index(index))
}

// Step applies each key in order, as a chain of Get and At calls would.
func (w *Walker) Step(keys ...Key) *Walker {
	current := w
	for _, key := range keys {
		current = current.step(key)
	}

	return current
}

func (w *Walker) step(key Key) *Walker {
	value, err := lookup(w.value, key)
	if err != nil {
		path := append(w.Path(), key)
		value = &Error{Path: path, Err: err}
	}

	return &Walker{value: value, parent: w, key: key}
}

// Decode unmarshals the value of this walker into target, see [Unmarshal].
func (w *Walker) Decode(target any) error {
	return Unmarshal(w.value, target)
}

func (w *Walker) String() string {
	return fmt.Sprintf("%s (%s)", w.PathString(), kindOf(w.value))
}

func lookup(container Value, key Key) (Value, error) {
	if name, ok := key.Field(); ok {
		object, ok := container.(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: get field %q of %s", ErrNotContainer, name, kindOf(container))
		}

		value, ok := object.Get(name)
		if !ok {
			return nil, ErrNoKey
		}

		return value, nil
	}

	index, _ := key.Index()

	array, ok := container.(*Array)
	if !ok {
		return nil, fmt.Errorf("%w: get index %d of %s", ErrNotContainer, index, kindOf(container))
	}

	switch {
	case index < 0:
		return nil, ErrNegativeIndex
	case index >= array.Len():
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexRange, index, array.Len())
	default:
		return array.Items[index], nil
	}
}

func assign(container Value, key Key, value Value) error {
	if name, ok := key.Field(); ok {
		object, ok := container.(*Object)
		if !ok {
			return fmt.Errorf("%w: set field %q of %s", ErrStructure, name, kindOf(container))
		}

		object.Set(name, value)
		return nil
	}

	index, _ := key.Index()

	array, ok := container.(*Array)
	if !ok {
		return fmt.Errorf("%w: set index %d of %s", ErrStructure, index, kindOf(container))
	}

	switch {
	case index < 0:
		return ErrNegativeIndex
	case index >= array.Len():
		return fmt.Errorf("%w: index %d, length %d", ErrIndexRange, index, array.Len())
	default:
		array.Items[index] = value
		return nil
	}
}
