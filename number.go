package jwalk

import (
	"errors"
	"fmt"
	"strconv"
)

// Number is a JSON number, stored as its literal text so that no precision is
// lost between parsing and re-serializing. The accessor methods parse the
// literal using strconv.ParseInt, strconv.ParseUint and strconv.ParseFloat.
type Number string

func (Number) Kind() Kind { return NumberKind }
func (Number) isValue()   {}

func NumberFromInt(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

func NumberFromUint(u uint64) Number {
	return Number(strconv.FormatUint(u, 10))
}

func NumberFromFloat(f float64) Number {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

func (n Number) Int() (int, error) {
	intValue, err := strconv.ParseInt(string(n), 10, strconv.IntSize)
	return handleSyntaxErr(n, int(intValue), err)
}

func (n Number) Int8() (int8, error) {
	intValue, err := strconv.ParseInt(string(n), 10, 8)
	return handleSyntaxErr(n, int8(intValue), err)
}

func (n Number) Int16() (int16, error) {
	intValue, err := strconv.ParseInt(string(n), 10, 16)
	return handleSyntaxErr(n, int16(intValue), err)
}

func (n Number) Int32() (int32, error) {
	intValue, err := strconv.ParseInt(string(n), 10, 32)
	return handleSyntaxErr(n, int32(intValue), err)
}

func (n Number) Int64() (int64, error) {
	intValue, err := strconv.ParseInt(string(n), 10, 64)
	return handleSyntaxErr(n, intValue, err)
}

func (n Number) Uint() (uint, error) {
	intValue, err := strconv.ParseUint(string(n), 10, strconv.IntSize)
	return handleSyntaxErr(n, uint(intValue), err)
}

func (n Number) Uint8() (uint8, error) {
	intValue, err := strconv.ParseUint(string(n), 10, 8)
	return handleSyntaxErr(n, uint8(intValue), err)
}

func (n Number) Uint16() (uint16, error) {
	intValue, err := strconv.ParseUint(string(n), 10, 16)
	return handleSyntaxErr(n, uint16(intValue), err)
}

func (n Number) Uint32() (uint32, error) {
	intValue, err := strconv.ParseUint(string(n), 10, 32)
	return handleSyntaxErr(n, uint32(intValue), err)
}

func (n Number) Uint64() (uint64, error) {
	intValue, err := strconv.ParseUint(string(n), 10, 64)
	return handleSyntaxErr(n, intValue, err)
}

func (n Number) Float32() (float32, error) {
	floatValue, err := strconv.ParseFloat(string(n), 32)
	return handleSyntaxErr(n, float32(floatValue), err)
}

func (n Number) Float64() (float64, error) {
	floatValue, err := strconv.ParseFloat(string(n), 64)
	return handleSyntaxErr(n, floatValue, err)
}

// Equal compares numerically if both literals parse as floats,
// and by their literal text otherwise.
func (n Number) Equal(other Number) bool {
	a, errA := n.Float64()
	b, errB := other.Float64()
	if errA != nil || errB != nil {
		return n == other
	}

	return a == b
}

// Valid reports whether n is a number literal as defined by RFC 8259:
// an optional minus, an integer part without leading zeros,
// an optional fraction and an optional exponent.
func (n Number) Valid() bool {
	s := string(n)

	// skip over a run of digits, returning the number of digits consumed
	digits := func(s string) int {
		idx := 0
		for idx < len(s) && s[idx] >= '0' && s[idx] <= '9' {
			idx++
		}

		return idx
	}

	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}

	switch {
	case len(s) == 0:
		return false
	case s[0] == '0':
		s = s[1:]
	default:
		count := digits(s)
		if count == 0 {
			return false
		}

		s = s[count:]
	}

	if len(s) > 0 && s[0] == '.' {
		count := digits(s[1:])
		if count == 0 {
			return false
		}

		s = s[1+count:]
	}

	if len(s) > 0 && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
			s = s[1:]
		}

		count := digits(s)
		if count == 0 {
			return false
		}

		s = s[count:]
	}

	return len(s) == 0
}

func handleSyntaxErr[T any](inputValue Number, value T, err error) (T, error) {
	var zeroValue T
	if errors.Is(err, strconv.ErrSyntax) {
		err := fmt.Errorf("parse number %q: %w", string(inputValue), err)
		return zeroValue, errors.Join(err, ErrNotSupported)
	}

	if err != nil {
		return zeroValue, err
	}

	return value, nil
}
