package jwalk

import (
	"fmt"
	"regexp"
)

type selectorKind int

const (
	selectNone selectorKind = iota
	selectAny
	selectIndex
	selectKey
	selectRegex
	selectSkipList
)

// Selector chooses the children a [Walker.Split] fans out to.
// Use one of the predefined selectors or build one with [Regex].
// The zero Selector is invalid.
type Selector struct {
	kind selectorKind
	re   *regexp.Regexp
}

var (
	// Any selects every field of an object or every element of an array.
	Any = Selector{kind: selectAny}

	// AnyIndex selects every element of an array.
	AnyIndex = Selector{kind: selectIndex}

	// AnyKey selects every field of an object.
	AnyKey = Selector{kind: selectKey}

	// SkipList selects every element of an array. Any other value
	// is passed through unchanged as a single walker.
	SkipList = Selector{kind: selectSkipList}
)

// Regex returns a Selector for every object field whose key fully matches pattern.
func Regex(pattern string) (Selector, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return Selector{}, fmt.Errorf("%w: %w", ErrInvalidSelector, err)
	}

	return Selector{kind: selectRegex, re: re}, nil
}

// MustRegex is like Regex but panics if the pattern does not compile.
func MustRegex(pattern string) Selector {
	selector, err := Regex(pattern)
	if err != nil {
		panic(err)
	}

	return selector
}

func (s Selector) String() string {
	switch s.kind {
	case selectAny:
		return "*"
	case selectIndex:
		return "[*]"
	case selectKey:
		return ".*"
	case selectRegex:
		return "~" + s.re.String()
	case selectSkipList:
		return "[*]?"
	default:
		return "<invalid>"
	}
}

func (s Selector) mustBeValid() {
	if s.kind == selectNone || s.kind > selectSkipList || (s.kind == selectRegex && s.re == nil) {
		panic(fmt.Errorf("%w: %#v", ErrInvalidSelector, s))
	}
}

// Split fans this walker out into a [Set] of child walkers chosen by selector:
//
//   - [Any] on an object or array yields every field or element.
//   - [AnyIndex] on an array yields every element.
//   - [AnyKey] on an object yields every field.
//   - A [Regex] selector on an object yields every field with a matching key.
//   - [SkipList] on an array yields every element, on anything else
//     a Set holding just this walker.
//
// Every other combination yields an empty Set. Split panics if selector
// is not a valid Selector.
func (w *Walker) Split(selector Selector) *Set {
	selector.mustBeValid()

	switch value := w.value.(type) {
	case *Object:
		switch selector.kind {
		case selectAny, selectKey:
			return w.fields(nil)
		case selectRegex:
			return w.fields(selector.re.MatchString)
		case selectSkipList:
			return NewSet(w)
		}

	case *Array:
		switch selector.kind {
		case selectAny, selectIndex, selectSkipList:
			return w.elements(value)
		}

	default:
		if selector.kind == selectSkipList {
			return NewSet(w)
		}
	}

	return NewSet()
}

func (w *Walker) fields(match func(string) bool) *Set {
	object := w.value.(*Object)

	walkers := make([]*Walker, 0, object.Len())
	for key, value := range object.All() {
		if match != nil && !match(key) {
			continue
		}

		walkers = append(walkers, &Walker{value: value, parent: w, key: Field(key)})
	}

	return NewSet(walkers...)
}

func (w *Walker) elements(array *Array) *Set {
	walkers := make([]*Walker, 0, array.Len())
	for idx, value := range array.All() {
		walkers = append(walkers, &Walker{value: value, parent: w, key: Index(idx)})
	}

	return NewSet(walkers...)
}
