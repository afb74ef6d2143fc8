package jwalk

import (
	"errors"
	"fmt"
)

var (
	// ErrParse wraps every syntax error returned by the loaders.
	ErrParse = errors.New("parse error")

	// ErrRoot is returned when asking a root walker for its parent.
	ErrRoot = errors.New("root object has no parent")

	ErrNoKey         = errors.New("no such key")
	ErrIndexRange    = errors.New("index out of range")
	ErrNegativeIndex = errors.New("negative index")
	ErrNotContainer  = errors.New("not a container")

	ErrExists    = errors.New("path already exists")
	ErrStructure = errors.New("structure mismatch")

	ErrNotJSON         = errors.New("not a JSON value")
	ErrNotSerializable = errors.New("not JSON serializable")
	ErrInvalidSelector = errors.New("invalid selector")

	ErrNoValue      = errors.New("no value")
	ErrNotSupported = errors.New("not supported")
)

// Error is the error-marker value. A failed navigation step does not return an error,
// it returns a [Walker] whose value is an *Error describing why the step failed.
// The marker is stored and propagated like any other [Value].
type Error struct {
	// Path of the walker that holds this marker, including the failing key.
	Path []Key

	// Err is the cause, usually one of ErrNoKey, ErrIndexRange,
	// ErrNegativeIndex or ErrNotContainer.
	Err error
}

func (*Error) Kind() Kind { return ErrorKind }
func (*Error) isValue()   {}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %s", FormatPath(e.Path), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Equal(other *Error) bool {
	return e == other
}

// PathError is returned by the operations that mutate a tree through a [Walker]
// when the requested mutation is not possible or not allowed.
type PathError struct {
	Op   string
	Path []Key
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, FormatPath(e.Path), e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// UnsupportedValueError is returned by the [CompactEncoder] for values
// without a textual representation, like error-markers.
type UnsupportedValueError struct {
	Kind Kind
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("value of kind %s is %s", e.Kind, ErrNotSerializable)
}

func (e *UnsupportedValueError) Unwrap() error {
	return ErrNotSerializable
}
