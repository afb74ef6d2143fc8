package jwalk

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// CompactEncoder writes values in a format that sits between single line JSON
// and fully indented JSON:
//
//   - empty objects and arrays are written as {} and []
//   - other objects, and arrays holding anything but strings, numbers and booleans,
//     are written over multiple lines, indented with one tab per level
//   - arrays holding only strings, numbers and booleans are written on a single
//     line as [a, b, c], no matter how deeply they are nested
//
// Strings and object keys are written between quotes exactly as they are,
// without escaping quotes, backslashes or control characters. The output is
// only valid JSON if the strings do not need escaping. Use [CompactEncoder.EscapeStrings]
// to encode strings as proper JSON strings instead.
type CompactEncoder struct {
	w      io.Writer
	escape bool
}

func NewCompactEncoder(w io.Writer) *CompactEncoder {
	return &CompactEncoder{w: w}
}

// EscapeStrings returns an encoder that writes strings and keys with JSON escaping.
func (e *CompactEncoder) EscapeStrings() *CompactEncoder {
	return &CompactEncoder{w: e.w, escape: true}
}

// Encode writes value to the underlying writer. No trailing newline is written.
// Returns an [*UnsupportedValueError] if the tree contains an error-marker.
func (e *CompactEncoder) Encode(value Value) error {
	var buf strings.Builder
	if err := e.encode(&buf, value, 0); err != nil {
		return err
	}

	_, err := io.WriteString(e.w, buf.String())
	return err
}

// MarshalCompact returns the compact encoding of value.
func MarshalCompact(value Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewCompactEncoder(&buf).Encode(value); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes the compact encoding of value to the file at path.
func WriteFile(path string, value Value) error {
	encoded, err := MarshalCompact(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}

	return os.WriteFile(path, encoded, 0o644)
}

// encode writes value without leading indentation. Lines following the first line
// are indented relative to depth.
func (e *CompactEncoder) encode(buf *strings.Builder, value Value, depth int) error {
	switch value := value.(type) {
	case nil, Null:
		buf.WriteString("null")

	case Bool:
		if value {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case Number:
		buf.WriteString(string(value))

	case String:
		return e.encodeString(buf, string(value))

	case *Object:
		if value.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}

		buf.WriteString("{\n")

		first := true
		for key, field := range value.All() {
			if !first {
				buf.WriteString(",\n")
			}

			first = false

			indent(buf, depth+1)
			if err := e.encodeString(buf, key); err != nil {
				return err
			}

			buf.WriteString(": ")
			if err := e.encode(buf, field, depth+1); err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
		}

		buf.WriteByte('\n')
		indent(buf, depth)
		buf.WriteByte('}')

	case *Array:
		if isPrimitiveArray(value) {
			buf.WriteByte('[')
			for idx, item := range value.Items {
				if idx > 0 {
					buf.WriteString(", ")
				}

				if err := e.encode(buf, item, depth+1); err != nil {
					return err
				}
			}

			buf.WriteByte(']')
			return nil
		}

		buf.WriteString("[\n")

		for idx, item := range value.Items {
			if idx > 0 {
				buf.WriteString(",\n")
			}

			indent(buf, depth+1)
			if err := e.encode(buf, item, depth+1); err != nil {
				return fmt.Errorf("element idx=%d: %w", idx, err)
			}
		}

		buf.WriteByte('\n')
		indent(buf, depth)
		buf.WriteByte(']')

	default:
		return &UnsupportedValueError{Kind: value.Kind()}
	}

	return nil
}

func (e *CompactEncoder) encodeString(buf *strings.Builder, s string) error {
	if !e.escape {
		buf.WriteByte('"')
		buf.WriteString(s)
		buf.WriteByte('"')
		return nil
	}

	quoted, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(s)
	if err != nil {
		return fmt.Errorf("quote string: %w", err)
	}

	buf.WriteString(quoted)
	return nil
}

// isPrimitiveArray reports whether every element is a string, number or boolean.
// An empty array counts as primitive, null does not.
func isPrimitiveArray(array *Array) bool {
	for _, item := range array.Items {
		switch item.(type) {
		case String, Number, Bool:
			continue
		default:
			return false
		}
	}

	return true
}

func indent(buf *strings.Builder, depth int) {
	for range depth {
		buf.WriteByte('\t')
	}
}
