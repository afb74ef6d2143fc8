package jwalk

import (
	"encoding"
	"fmt"
	"golang.org/x/exp/constraints"
	"reflect"
	"strconv"
	"sync"
)

type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}

// Unmarshal stores value into the go value pointed to by target, using the default [Decoder].
func Unmarshal(value Value, target any) error {
	return dec.Unmarshal(value, target)
}

func UnmarshalNew[T any](value Value) (T, error) {
	return UnmarshalNewWith[T](&dec, value)
}

func UnmarshalNewWith[T any](dec *Decoder, value Value) (T, error) {
	var target T
	err := dec.Unmarshal(value, &target)
	return target, err
}

// A setter sets the reflect.Value to the go representation of the given Value
type setter func(Value, reflect.Value) error

// A set of types that are currently in construction
type typeSet map[reflect.Type]struct{}

var tyTextUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// The default Decoder instance.
var dec Decoder

// Decoder can be used to customize unmarshalling. This type is typesafe.
type Decoder struct {
	// the struct tag that is used
	structTag string

	// Cache for setters, indexed by reflect.Type
	setterCache sync.Map

	// Require values for fields. Set to true to fail with ErrNoValue
	// if a struct field is missing in the object
	requireValues bool
}

func NewDecoder() *Decoder {
	return &Decoder{
		structTag: "json",
	}
}

func (d *Decoder) WithTag(structTag string) *Decoder {
	if d.structTag == structTag {
		return d
	}

	return &Decoder{
		structTag:     structTag,
		requireValues: d.requireValues,
	}
}

func (d *Decoder) RequireValues() *Decoder {
	if d.requireValues {
		return d
	}

	return &Decoder{
		structTag:     d.structTag,
		requireValues: true,
	}
}

// Unmarshal stores value into the go value pointed to by target.
// Null leaves pointers, slices, maps and interfaces nil and other types at their zero value.
// An error-marker anywhere in value is returned as the error.
func (d *Decoder) Unmarshal(value Value, target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Pointer || targetValue.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %T: %w", target, ErrNotSupported)
	}

	targetValue = targetValue.Elem()

	// build the setter for the targets type
	setter, err := d.setterOf(typeSet{}, targetValue.Type())
	if err != nil {
		return err
	}

	return setter(value, targetValue)
}

func (d *Decoder) setterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if cached, ok := d.setterCache.Load(ty); ok {
		return cached.(setter), nil
	}

	if _, ok := inConstruction[ty]; ok {
		// detected a cycle. return a setter that does a cache lookup when executed.
		// we assume that the actual setter will be in the cache once this setter is executed.
		lazySetter := func(value Value, target reflect.Value) error {
			cached, _ := d.setterCache.Load(ty)
			return cached.(setter)(value, target)
		}

		return lazySetter, nil
	}

	inConstruction[ty] = struct{}{}

	setter, err := d.makeSetterOf(inConstruction, ty)
	if err != nil {
		return nil, err
	}

	setter = zeroOnNull(setter)

	d.setterCache.Store(ty, setter)

	return setter, nil
}

func (d *Decoder) makeSetterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if reflect.PointerTo(ty).Implements(tyTextUnmarshaler) {
		return setTextUnmarshaler, nil
	}

	switch ty.Kind() {
	case reflect.Bool:
		return setBool, nil

	case reflect.Int:
		return makeSetInt(Number.Int), nil

	case reflect.Int8:
		return makeSetInt(Number.Int8), nil

	case reflect.Int16:
		return makeSetInt(Number.Int16), nil

	case reflect.Int32:
		return makeSetInt(Number.Int32), nil

	case reflect.Int64:
		return makeSetInt(Number.Int64), nil

	case reflect.Uint:
		return makeSetUint(Number.Uint), nil

	case reflect.Uint8:
		return makeSetUint(Number.Uint8), nil

	case reflect.Uint16:
		return makeSetUint(Number.Uint16), nil

	case reflect.Uint32:
		return makeSetUint(Number.Uint32), nil

	case reflect.Uint64:
		return makeSetUint(Number.Uint64), nil

	case reflect.Float32, reflect.Float64:
		return setFloat, nil

	case reflect.String:
		return setString, nil

	case reflect.Interface:
		if ty.NumMethod() != 0 {
			return nil, NotSupportedError{Type: ty}
		}

		return setAny, nil

	case reflect.Pointer:
		return d.makeSetPointer(inConstruction, ty)

	case reflect.Struct:
		return d.makeSetStruct(inConstruction, ty)

	case reflect.Slice:
		return d.makeSetSlice(inConstruction, ty)

	case reflect.Array:
		return d.makeSetArray(inConstruction, ty)

	case reflect.Map:
		return d.makeSetMap(inConstruction, ty)

	default:
		return nil, NotSupportedError{Type: ty}
	}
}

func (d *Decoder) makeSetStruct(inConstruction typeSet, ty reflect.Type) (setter, error) {
	var setters []setter

	structTag := d.structTag
	if structTag == "" {
		structTag = "json"
	}

	fields := structFields(ty, structTag)

	for _, field := range fields {
		de, err := d.setterOf(inConstruction, field.typ)
		if err != nil {
			return nil, fmt.Errorf("setter for field %q: %w", field.key, err)
		}

		setters = append(setters, de)
	}

	setter := func(value Value, target reflect.Value) error {
		object, err := valueAs[*Object](value)
		if err != nil {
			return err
		}

		for idx, field := range fields {
			fieldValue, ok := field.valueIn(object)
			if !ok {
				if d.requireValues {
					return fmt.Errorf("field %q: %w", field.key, ErrNoValue)
				}

				// It is okay to not get a value at all,
				// in that case we just skip the field
				continue
			}

			fieldTarget := target.FieldByIndex(field.index)
			if err := setters[idx](fieldValue, fieldTarget); err != nil {
				return fmt.Errorf("set field %q on %q: %w", field.key, target.Type(), err)
			}
		}

		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetMap(inConstruction typeSet, ty reflect.Type) (setter, error) {
	keyType := ty.Key()
	valueType := ty.Elem()

	if keyType.Kind() != reflect.String && !reflect.PointerTo(keyType).Implements(tyTextUnmarshaler) {
		return nil, NotSupportedError{Type: ty}
	}

	keySetter, err := d.setterOf(inConstruction, keyType)
	if err != nil {
		return nil, fmt.Errorf("setter for key type %q: %w", ty, err)
	}

	valueSetter, err := d.setterOf(inConstruction, valueType)
	if err != nil {
		return nil, fmt.Errorf("setter for value type %q: %w", ty, err)
	}

	setter := func(value Value, target reflect.Value) error {
		object, err := valueAs[*Object](value)
		if err != nil {
			return err
		}

		mapTarget := reflect.MakeMapWithSize(ty, object.Len())

		for key, fieldValue := range object.All() {
			keyTarget := reflect.New(keyType).Elem()
			if err := keySetter(String(key), keyTarget); err != nil {
				return fmt.Errorf("set key %q: %w", key, err)
			}

			valueTarget := reflect.New(valueType).Elem()
			if err := valueSetter(fieldValue, valueTarget); err != nil {
				return fmt.Errorf("set value of key %q: %w", key, err)
			}

			mapTarget.SetMapIndex(keyTarget, valueTarget)
		}

		target.Set(mapTarget)

		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetSlice(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := d.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	setter := func(value Value, target reflect.Value) error {
		array, err := valueAs[*Array](value)
		if err != nil {
			return err
		}

		sliceTarget := reflect.MakeSlice(ty, array.Len(), array.Len())

		for idx, item := range array.All() {
			if err := elementSetter(item, sliceTarget.Index(idx)); err != nil {
				return fmt.Errorf("set element idx=%d: %w", idx, err)
			}
		}

		target.Set(sliceTarget)

		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetArray(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := d.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	// number of elements in the array
	elementCount := ty.Len()

	setter := func(value Value, target reflect.Value) error {
		array, err := valueAs[*Array](value)
		if err != nil {
			return err
		}

		// surplus elements are ignored, missing elements stay zero
		for idx := 0; idx < elementCount && idx < array.Len(); idx++ {
			if err := elementSetter(array.Items[idx], target.Index(idx)); err != nil {
				return fmt.Errorf("set element idx=%d: %w", idx, err)
			}
		}

		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetPointer(inConstruction typeSet, ty reflect.Type) (setter, error) {
	pointeeType := ty.Elem()

	pointeeSetter, err := d.setterOf(inConstruction, pointeeType)
	if err != nil {
		return nil, err
	}

	setter := func(value Value, target reflect.Value) error {
		// newValue is now a pointer to an instance of the pointeeType
		newValue := reflect.New(pointeeType)
		if err := pointeeSetter(value, newValue.Elem()); err != nil {
			return err
		}

		// set pointer to the new value
		target.Set(newValue)

		return nil
	}

	return setter, err
}

// zeroOnNull wraps a setter to reset the target if the value is null.
func zeroOnNull(set setter) setter {
	return func(value Value, target reflect.Value) error {
		if kindOf(value) == NullKind {
			target.SetZero()
			return nil
		}

		return set(value, target)
	}
}

func setBool(value Value, target reflect.Value) error {
	boolValue, err := valueAs[Bool](value)
	if err != nil {
		return fmt.Errorf("get bool value: %w", err)
	}

	target.SetBool(bool(boolValue))
	return nil
}

func makeSetInt[T constraints.Signed](parse func(Number) (T, error)) setter {
	return func(value Value, target reflect.Value) error {
		number, err := valueAs[Number](value)
		if err != nil {
			return fmt.Errorf("get int value: %w", err)
		}

		parsedValue, err := parse(number)
		if err != nil {
			return fmt.Errorf("get %T value: %w", parsedValue, err)
		}

		target.SetInt(int64(parsedValue))
		return nil
	}
}

func makeSetUint[T constraints.Unsigned](parse func(Number) (T, error)) setter {
	return func(value Value, target reflect.Value) error {
		number, err := valueAs[Number](value)
		if err != nil {
			return fmt.Errorf("get uint value: %w", err)
		}

		parsedValue, err := parse(number)
		if err != nil {
			return fmt.Errorf("get %T value: %w", parsedValue, err)
		}

		target.SetUint(uint64(parsedValue))
		return nil
	}
}

func setFloat(value Value, target reflect.Value) error {
	number, err := valueAs[Number](value)
	if err != nil {
		return fmt.Errorf("get float value: %w", err)
	}

	floatValue, err := strconv.ParseFloat(string(number), target.Type().Bits())
	floatValue, err = handleSyntaxErr(number, floatValue, err)
	if err != nil {
		return fmt.Errorf("get float value: %w", err)
	}

	target.SetFloat(floatValue)
	return nil
}

func setString(value Value, target reflect.Value) error {
	stringValue, err := valueAs[String](value)
	if err != nil {
		return fmt.Errorf("get string value: %w", err)
	}

	target.SetString(string(stringValue))

	return nil
}

func setTextUnmarshaler(value Value, target reflect.Value) error {
	text, err := valueAs[String](value)
	if err != nil {
		return fmt.Errorf("get string value: %w", err)
	}

	m := target.Addr().Interface().(encoding.TextUnmarshaler)
	return m.UnmarshalText([]byte(text))
}

func setAny(value Value, target reflect.Value) error {
	if err := firstError(value); err != nil {
		return err
	}

	target.Set(reflect.ValueOf(ToAny(value)))
	return nil
}

// valueAs returns value as T. An error-marker is returned as the error,
// any other mismatch as ErrNotSupported.
func valueAs[T Value](value Value) (T, error) {
	var zeroValue T

	if marker, ok := value.(*Error); ok {
		return zeroValue, marker
	}

	typedValue, ok := value.(T)
	if !ok {
		return zeroValue, fmt.Errorf("expected %s, got %s: %w", zeroValue.Kind(), kindOf(value), ErrNotSupported)
	}

	return typedValue, nil
}

// firstError returns the first error-marker found in value, in depth first order.
func firstError(value Value) error {
	switch value := value.(type) {
	case *Error:
		return value
	case *Array:
		for _, item := range value.Items {
			if err := firstError(item); err != nil {
				return err
			}
		}
	case *Object:
		for _, field := range value.All() {
			if err := firstError(field); err != nil {
				return err
			}
		}
	}

	return nil
}
