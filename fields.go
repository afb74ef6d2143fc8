package jwalk

import (
	"reflect"
	"strings"
)

// structField is a struct field that receives the value of an object field.
type structField struct {
	// key of the object field
	key   string
	typ   reflect.Type
	index []int
}

// valueIn returns the value for this field. An exact key match wins,
// otherwise the last key that matches case-insensitively is used.
func (f structField) valueIn(object *Object) (Value, bool) {
	if value, ok := object.Get(f.key); ok {
		return value, true
	}

	var folded Value
	var found bool
	for key, value := range object.All() {
		if strings.EqualFold(key, f.key) {
			folded, found = value, true
		}
	}

	return folded, found
}

type embeddedStruct struct {
	typ   reflect.Type
	index []int
}

type fieldCandidate struct {
	field    structField
	explicit bool
}

// structFields returns the fields of a struct type that receive object fields.
// Fields of embedded structs are promoted following the rules of encoding/json:
// a key used at a shallower depth hides every deeper use of the same key, and
// of several uses at the same depth only a single tagged one survives.
func structFields(ty reflect.Type, structTag string) []structField {
	if ty.Kind() != reflect.Struct {
		panic("not a struct: " + ty.String())
	}

	var fields []structField

	// keys decided at a shallower depth
	decided := map[string]bool{}

	depth := []embeddedStruct{{typ: ty}}
	for len(depth) > 0 {
		var deeper []embeddedStruct

		var keys []string
		candidates := map[string][]fieldCandidate{}

		for _, embedded := range depth {
			for idx := range embedded.typ.NumField() {
				fi := embedded.typ.Field(idx)
				if !fi.IsExported() {
					continue
				}

				key, explicit := keyOf(fi, structTag)
				if key == "" {
					continue
				}

				// copy to not share the backing array with sibling fields
				index := append(embedded.index[:len(embedded.index):len(embedded.index)], fi.Index...)

				if fi.Anonymous && !explicit {
					// only embedded structs are promoted
					if fi.Type.Kind() == reflect.Struct {
						deeper = append(deeper, embeddedStruct{typ: fi.Type, index: index})
					}

					continue
				}

				if decided[key] {
					continue
				}

				if _, seen := candidates[key]; !seen {
					keys = append(keys, key)
				}

				candidates[key] = append(candidates[key], fieldCandidate{
					field:    structField{key: key, typ: fi.Type, index: index},
					explicit: explicit,
				})
			}
		}

		for _, key := range keys {
			decided[key] = true

			if field, ok := dominantField(candidates[key]); ok {
				fields = append(fields, field)
			}
		}

		depth = deeper
	}

	return fields
}

// dominantField picks the field that wins among candidates of the same depth.
// Conflicts without a winner are dropped silently.
func dominantField(candidates []fieldCandidate) (structField, bool) {
	if len(candidates) == 1 {
		return candidates[0].field, true
	}

	var winner *fieldCandidate
	for idx := range candidates {
		if !candidates[idx].explicit {
			continue
		}

		if winner != nil {
			return structField{}, false
		}

		winner = &candidates[idx]
	}

	if winner == nil {
		return structField{}, false
	}

	return winner.field, true
}

// keyOf returns the object key for a struct field and whether it was named
// explicitly in the struct tag. An empty key means the field is skipped.
func keyOf(fi reflect.StructField, structTag string) (key string, explicit bool) {
	tag := fi.Tag.Get(structTag)

	switch name, _, _ := strings.Cut(tag, ","); {
	case tag == "-":
		return "", true
	case name != "":
		return name, true
	default:
		return fi.Name, false
	}
}
