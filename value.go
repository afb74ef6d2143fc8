package jwalk

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"math"
	"reflect"
	"slices"
)

// Kind identifies the variant of a [Value].
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
	ErrorKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "Null"
	case BoolKind:
		return "Bool"
	case NumberKind:
		return "Number"
	case StringKind:
		return "String"
	case ArrayKind:
		return "Array"
	case ObjectKind:
		return "Object"
	case ErrorKind:
		return "Error"
	default:
		return "<unknown kind>"
	}
}

// IsContainer reports whether values of this kind can be stepped into.
func (k Kind) IsContainer() bool {
	return k == ArrayKind || k == ObjectKind
}

// Value is a node of a JSON tree. The set of implementations is closed:
// [Null], [Bool], [Number], [String], [*Array], [*Object] and the error-marker [*Error].
//
// Containers are pointers. All values reachable from the same root share their
// containers, so a write through one [Walker] is visible to every other walker
// of the same tree.
type Value interface {
	Kind() Kind

	isValue()
}

// Null is the JSON null literal.
type Null struct{}

func (Null) Kind() Kind { return NullKind }
func (Null) isValue()   {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }
func (Bool) isValue()   {}

// String is a JSON string.
type String string

func (String) Kind() Kind { return StringKind }
func (String) isValue()   {}

// Array is an ordered JSON array.
type Array struct {
	Items []Value
}

func NewArray(items ...Value) *Array {
	return &Array{Items: items}
}

func (*Array) Kind() Kind { return ArrayKind }
func (*Array) isValue()   {}

func (a *Array) Len() int {
	if a == nil {
		return 0
	}

	return len(a.Items)
}

// Get returns the element at index, or false if index is out of range.
func (a *Array) Get(index int) (Value, bool) {
	if index < 0 || index >= a.Len() {
		return nil, false
	}

	return a.Items[index], true
}

func (a *Array) All() iter.Seq2[int, Value] {
	return slices.All(a.Items)
}

func (a *Array) Equal(other *Array) bool {
	if a.Len() != other.Len() {
		return false
	}

	for idx := range a.Len() {
		if !Equal(a.Items[idx], other.Items[idx]) {
			return false
		}
	}

	return true
}

// Object is a JSON object that remembers the order in which its keys were inserted.
type Object struct {
	keys   []string
	fields map[string]Value
}

func NewObject() *Object {
	return &Object{fields: map[string]Value{}}
}

func (*Object) Kind() Kind { return ObjectKind }
func (*Object) isValue()   {}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.keys)
}

// Keys returns the keys of the object in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}

	return slices.Clone(o.keys)
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}

	value, ok := o.fields[key]
	return value, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set assigns value to key. A new key is appended after all existing keys,
// an existing key keeps its position.
func (o *Object) Set(key string, value Value) {
	if o.fields == nil {
		o.fields = map[string]Value{}
	}

	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}

	o.fields[key] = value
}

func (o *Object) Delete(key string) {
	if !o.Has(key) {
		return
	}

	delete(o.fields, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// All yields the fields of the object in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}

		for _, key := range o.keys {
			if !yield(key, o.fields[key]) {
				return
			}
		}
	}
}

// Equal compares two objects like JSON does: key order is not significant.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}

	for key, value := range o.All() {
		otherValue, ok := other.Get(key)
		if !ok || !Equal(value, otherValue) {
			return false
		}
	}

	return true
}

// Equal reports whether a and b are deeply equal JSON values.
// Numbers are compared by their numeric value, error-markers by identity.
func Equal(a, b Value) bool {
	if kindOf(a) != kindOf(b) {
		return false
	}

	switch a := a.(type) {
	case nil, Null:
		return true
	case Bool:
		return a == b.(Bool)
	case Number:
		return a.Equal(b.(Number))
	case String:
		return a == b.(String)
	case *Array:
		return a.Equal(b.(*Array))
	case *Object:
		return a.Equal(b.(*Object))
	case *Error:
		return a.Equal(b.(*Error))
	default:
		panic(fmt.Sprintf("unexpected value type %T", a))
	}
}

// kindOf treats a nil Value as null.
func kindOf(value Value) Kind {
	if value == nil {
		return NullKind
	}

	return value.Kind()
}

// ValueOf converts an already decoded go value, like the ones produced by
// [json.Unmarshal] into an `any`, into a [Value]. Maps are converted with sorted keys.
// An error is converted into an error-marker.
//
// Returns [ErrNotJSON] if the value, or any value nested within, has no JSON representation.
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil

	case Value:
		return v, nil

	case error:
		return &Error{Err: v}, nil

	case bool:
		return Bool(v), nil

	case string:
		return String(v), nil

	case json.Number:
		if !Number(v).Valid() {
			return nil, fmt.Errorf("%w: invalid number %q", ErrNotJSON, string(v))
		}

		return Number(v), nil

	case []any:
		array := NewArray(make([]Value, 0, len(v))...)
		for idx, item := range v {
			value, err := ValueOf(item)
			if err != nil {
				return nil, fmt.Errorf("element idx=%d: %w", idx, err)
			}

			array.Items = append(array.Items, value)
		}

		return array, nil

	case map[string]any:
		object := NewObject()
		for _, key := range slices.Sorted(maps.Keys(v)) {
			value, err := ValueOf(v[key])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}

			object.Set(key, value)
		}

		return object, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberFromInt(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NumberFromUint(rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v", ErrNotJSON, f)
		}

		return NumberFromFloat(f), nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrNotJSON, v)
	}
}

// ToAny converts a [Value] into plain go values: map[string]any, []any,
// string, float64, bool and nil. An error-marker is returned as its error.
func ToAny(value Value) any {
	switch value := value.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(value)
	case Number:
		f, _ := value.Float64()
		return f
	case String:
		return string(value)
	case *Array:
		items := make([]any, 0, value.Len())
		for _, item := range value.Items {
			items = append(items, ToAny(item))
		}

		return items
	case *Object:
		fields := make(map[string]any, value.Len())
		for key, field := range value.All() {
			fields[key] = ToAny(field)
		}

		return fields
	case *Error:
		return error(value)
	default:
		panic(fmt.Sprintf("unexpected value type %T", value))
	}
}
