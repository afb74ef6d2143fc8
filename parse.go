package jwalk

import (
	"errors"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// size of the read buffer used when parsing from an io.Reader
const readBufferSize = 4096

// Parse parses data as strict JSON and returns a root walker for it.
// Syntax errors are returned wrapping ErrParse.
func Parse(data []byte) (*Walker, error) {
	return decodeWalker(jsoniter.ParseBytes(jsoniter.ConfigDefault, data))
}

func ParseString(text string) (*Walker, error) {
	return Load(strings.NewReader(text))
}

// Load parses strict JSON from r. The reader must hold exactly one JSON value.
func Load(r io.Reader) (*Walker, error) {
	return decodeWalker(jsoniter.Parse(jsoniter.ConfigDefault, r, readBufferSize))
}

func decodeWalker(it *jsoniter.Iterator) (*Walker, error) {
	value, err := decodeValue(it)
	if err != nil {
		return nil, err
	}

	return New(value), nil
}

// decodeValue reads exactly one JSON value from the iterator. Objects keep the order of their keys.
func decodeValue(it *jsoniter.Iterator) (Value, error) {
	value := readValue(it)

	// reading a number at the very end of the input leaves io.EOF behind
	if it.Error != nil && !errors.Is(it.Error, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrParse, it.Error)
	}

	// nothing but whitespace may follow the value
	it.WhatIsNext()

	switch {
	case it.Error == nil:
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrParse)
	case !errors.Is(it.Error, io.EOF):
		return nil, fmt.Errorf("%w: %w", ErrParse, it.Error)
	}

	return value, nil
}

func readValue(it *jsoniter.Iterator) Value {
	switch it.WhatIsNext() {
	case jsoniter.ObjectValue:
		object := NewObject()
		it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			object.Set(key, readValue(it))
			return readable(it)
		})

		return object

	case jsoniter.ArrayValue:
		array := NewArray()
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			array.Items = append(array.Items, readValue(it))
			return readable(it)
		})

		return array

	case jsoniter.StringValue:
		return String(it.ReadString())

	case jsoniter.NumberValue:
		number := Number(it.ReadNumber())
		if !number.Valid() {
			it.ReportError("read number", fmt.Sprintf("invalid number literal %q", string(number)))
		}

		return number

	case jsoniter.BoolValue:
		return Bool(it.ReadBool())

	case jsoniter.NilValue:
		it.ReadNil()
		return Null{}

	default:
		it.ReportError("read value", "expected a JSON value")
		return Null{}
	}
}

// readable reports whether reading may continue. io.EOF is left to the
// container being read, which reports the missing closing bracket.
func readable(it *jsoniter.Iterator) bool {
	return it.Error == nil || errors.Is(it.Error, io.EOF)
}
