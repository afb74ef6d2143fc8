package jwalk

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"strconv"
	"testing"
)

const exampleJSON = `{
	"a": 1,
	"b": [{"x": 1, "y": 2}, {"x": 4, "y": 5}],
	"c": {"c1": {"x": 11, "y": 22}, "c2": {"x": 44, "y": 55}}
}`

func exampleWalker(t *testing.T) *Walker {
	t.Helper()

	walker, err := ParseString(exampleJSON)
	require.NoError(t, err)

	return walker
}

func TestWalkerStep(t *testing.T) {
	root := exampleWalker(t)

	a := root.Get("a")
	require.Equal(t, Value(Number("1")), a.Value())

	parent, err := a.Parent()
	require.NoError(t, err)
	require.Same(t, root, parent)

	key, err := a.ParentKey()
	require.NoError(t, err)
	require.Equal(t, Field("a"), key)

	y := root.Get("b").At(1).Get("y")
	require.Equal(t, Value(Number("5")), y.Value())
	require.Equal(t, []Key{Field("b"), Index(1), Field("y")}, y.Path())
	require.Equal(t, "$.b[1].y", y.PathString())
	require.Same(t, root, y.Root())
	require.True(t, y.Exists())

	require.Equal(t, y.Value(), root.Step(Field("b"), Index(1), Field("y")).Value())
}

func TestWalkerStepSharesContainers(t *testing.T) {
	root := exampleWalker(t)

	b := root.Get("b")

	object, ok := root.Value().(*Object)
	require.True(t, ok)

	fromObject, _ := object.Get("b")
	require.Same(t, fromObject, b.Value())
}

func TestWalkerStepFailures(t *testing.T) {
	root := exampleWalker(t)

	testCases := []struct {
		Name   string
		Walker *Walker
		Err    error
	}{
		{"missing key", root.Get("missing"), ErrNoKey},
		{"index into object", root.At(0), ErrNotContainer},
		{"field of array", root.Get("b").Get("x"), ErrNotContainer},
		{"index out of range", root.Get("b").At(2), ErrIndexRange},
		{"negative index", root.Get("b").At(-1), ErrNegativeIndex},
		{"field of number", root.Get("a").Get("x"), ErrNotContainer},
		{"index into number", root.Get("a").At(0), ErrNotContainer},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			marker, ok := tc.Walker.Value().(*Error)
			require.True(t, ok, "expected error-marker, got %s", tc.Walker.Value().Kind())
			require.ErrorIs(t, marker, tc.Err)
			require.Equal(t, tc.Walker.Path(), marker.Path)
			require.False(t, tc.Walker.Exists())

			// the parent is still the walker we stepped from
			parent, err := tc.Walker.Parent()
			require.NoError(t, err)
			require.NotNil(t, parent)
		})
	}
}

func TestWalkerStepFromErrorMarker(t *testing.T) {
	root := exampleWalker(t)

	missing := root.Get("missing")
	deeper := missing.Get("x").At(3).Get("y")

	marker, ok := deeper.Value().(*Error)
	require.True(t, ok)
	require.ErrorIs(t, marker, ErrNotContainer)
	require.Equal(t, "$.missing.x[3].y", deeper.PathString())
	require.False(t, deeper.Exists())
}

func TestWalkerRoot(t *testing.T) {
	root := exampleWalker(t)
	require.True(t, root.IsRoot())
	require.Empty(t, root.Path())
	require.Equal(t, "$", root.PathString())
	require.True(t, root.Exists())

	_, err := root.Parent()
	require.ErrorIs(t, err, ErrRoot)

	_, err = root.ParentKey()
	require.ErrorIs(t, err, ErrRoot)
}

func TestWalkerSetValue(t *testing.T) {
	root := exampleWalker(t)

	x := root.Get("b").At(0).Get("x")
	require.NoError(t, x.SetValue(String("changed")))
	require.Equal(t, Value(String("changed")), x.Value())
	require.Equal(t, Value(String("changed")), root.Get("b").At(0).Get("x").Value())

	element := root.Get("b").At(1)
	require.NoError(t, element.SetValue(Bool(true)))
	require.Equal(t, Value(Bool(true)), root.Get("b").At(1).Value())

	// a missing field is created in the parent object
	created := root.Get("d")
	require.False(t, created.Exists())
	require.NoError(t, created.SetValue(Null{}))
	require.True(t, created.Exists())
	require.Equal(t, []string{"a", "b", "c", "d"}, root.Value().(*Object).Keys())
}

func TestWalkerSetValueOutOfRange(t *testing.T) {
	root := exampleWalker(t)

	walker := root.Get("b").At(5)
	err := walker.SetValue(String("x"))
	require.ErrorIs(t, err, ErrIndexRange)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "$.b[5]", FormatPath(pathErr.Path))

	// the walker keeps its old value
	_, isMarker := walker.Value().(*Error)
	require.True(t, isMarker)
}

func TestWalkerSetValueOnRoot(t *testing.T) {
	root := New(NewObject())
	require.NoError(t, root.SetValue(String("replaced")))
	require.Equal(t, Value(String("replaced")), root.Value())
}

func TestWalkerExistsUsesLiveData(t *testing.T) {
	root := exampleWalker(t)

	y := root.Get("c").Get("c1").Get("y")
	require.True(t, y.Exists())

	require.NoError(t, root.Get("c").SetValue(NewArray()))

	// the cached value is a snapshot, existence is checked against the tree
	require.Equal(t, Value(Number("22")), y.Value())
	require.False(t, y.Exists())
}

func TestWalkerExistsReproducesValue(t *testing.T) {
	root := exampleWalker(t)

	for walker := range root.Split(Any).Split(SkipList).Split(Any).All() {
		require.True(t, walker.Exists())
		require.True(t, Equal(walker.Value(), walker.Root().Step(walker.Path()...).Value()))
	}
}

func TestWalkerAgreesWithGJSON(t *testing.T) {
	root := exampleWalker(t)

	paths := [][]Key{
		{Field("a")},
		{Field("b"), Index(0), Field("x")},
		{Field("b"), Index(1)},
		{Field("c"), Field("c2"), Field("y")},
		{Field("c"), Field("c3")},
		{Field("b"), Index(7)},
	}

	for _, path := range paths {
		var gjsonPath string
		for idx, key := range path {
			if idx > 0 {
				gjsonPath += "."
			}

			if index, ok := key.Index(); ok {
				gjsonPath += strconv.Itoa(index)
			} else {
				name, _ := key.Field()
				gjsonPath += name
			}
		}

		expected := gjson.Get(exampleJSON, gjsonPath)
		walker := root.Step(path...)

		if !expected.Exists() {
			require.Equal(t, ErrorKind, walker.Value().Kind(), "path %s", gjsonPath)
			continue
		}

		parsed, err := ParseString(expected.Raw)
		require.NoError(t, err)

		if diff := cmp.Diff(parsed.Value(), walker.Value()); diff != "" {
			t.Errorf("path %s mismatch (-gjson +walker):\n%s", gjsonPath, diff)
		}
	}
}

func TestFromAny(t *testing.T) {
	walker, err := FromAny(map[string]any{
		"b": []any{1, 2.5, "three", nil, true},
		"a": uint8(7),
	})
	require.NoError(t, err)

	object := walker.Value().(*Object)
	require.Equal(t, []string{"a", "b"}, object.Keys())
	require.Equal(t, Value(Number("2.5")), walker.Get("b").At(1).Value())
	require.Equal(t, Value(Null{}), walker.Get("b").At(3).Value())

	_, err = FromAny(map[string]any{"x": make(chan int)})
	require.ErrorIs(t, err, ErrNotJSON)
}

func TestNewNil(t *testing.T) {
	require.Equal(t, Value(Null{}), New(nil).Value())
}
