package jwalk

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func requireJSON(t *testing.T, expected string, actual Value) {
	t.Helper()

	expectedValue := mustParse(t, expected)
	require.True(t, Equal(expectedValue, actual), "expected %s, got %s", expected, mustMarshal(t, actual))
}

func mustMarshal(t *testing.T, value Value) string {
	t.Helper()

	text, err := MarshalCompact(value)
	require.NoError(t, err)

	return string(text)
}

func TestCreatePath(t *testing.T) {
	root := New(NewObject())

	ab := root.Get("a").Get("b")
	require.NoError(t, ab.CreatePath(String("Hello")))
	requireJSON(t, `{"a": {"b": "Hello"}}`, root.Value())
	require.True(t, ab.Exists())
	require.Equal(t, Value(String("Hello")), ab.Value())

	c3 := root.Get("c").At(3)
	require.NoError(t, c3.CreatePath(String("Test"), EmptyListItemFactory(func() Value { return String("abc") })))
	requireJSON(t, `{"a": {"b": "Hello"}, "c": ["abc", "abc", "abc", "Test"]}`, root.Value())
	require.Equal(t, "$.c[3]", c3.PathString())
	require.True(t, c3.Exists())
}

func TestCreatePathDefaultFillsWithNull(t *testing.T) {
	root := New(NewObject())

	require.NoError(t, root.Get("list").At(2).Get("name").CreatePath(String("x")))
	requireJSON(t, `{"list": [null, null, {"name": "x"}]}`, root.Value())
}

func TestCreatePathExisting(t *testing.T) {
	root := exampleWalker(t)

	a := root.Get("a")
	require.NoError(t, a.CreatePath(String("ignored")))
	require.Equal(t, Value(Number("1")), root.Get("a").Value())

	err := a.CreatePath(String("ignored"), ExistsOK(false))
	require.ErrorIs(t, err, ErrExists)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "create", pathErr.Op)
	require.Equal(t, []Key{Field("a")}, pathErr.Path)
}

func TestCreatePathIsIdempotent(t *testing.T) {
	root := New(NewObject())

	walker := root.Get("x").At(1).Get("y")
	require.NoError(t, walker.CreatePath(Bool(true)))

	before := mustMarshal(t, root.Value())
	require.NoError(t, root.Get("x").At(1).Get("y").CreatePath(Bool(false)))
	require.Equal(t, before, mustMarshal(t, root.Value()))
}

func TestCreatePathBreaksStructure(t *testing.T) {
	root := exampleWalker(t)

	// "a" holds a number and is replaced with an object
	require.NoError(t, root.Get("a").Get("x").CreatePath(String("new")))
	requireJSON(t, `{"x": "new"}`, root.Get("a").Value())

	// "c" holds an object and is replaced with an array
	require.NoError(t, root.Get("c").At(0).CreatePath(Null{}))
	requireJSON(t, `[null]`, root.Get("c").Value())
}

func TestCreatePathKeepsStructure(t *testing.T) {
	root := exampleWalker(t)

	err := root.Get("a").Get("x").CreatePath(String("new"), CanBreakStructure(false))
	require.ErrorIs(t, err, ErrStructure)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "$.a.x", FormatPath(pathErr.Path))

	err = root.Get("b").Get("x").CreatePath(String("new"), CanBreakStructure(false))
	require.ErrorIs(t, err, ErrStructure)

	// nothing was changed
	requireJSON(t, exampleJSON, root.Value())
}

func TestCreatePathNewDataMayBeReplaced(t *testing.T) {
	root := New(NewObject())

	// "a" does not exist, so everything below it is new and may take any shape
	err := root.Get("a").At(2).Get("b").CreatePath(Number("1"), CanBreakStructure(false))
	require.NoError(t, err)
	requireJSON(t, `{"a": [null, null, {"b": 1}]}`, root.Value())
}

func TestCreatePathWithoutEmptyListItems(t *testing.T) {
	root := exampleWalker(t)

	err := root.Get("b").At(4).CreatePath(String("x"), CanCreateEmptyListItems(false))
	require.ErrorIs(t, err, ErrIndexRange)
	require.Len(t, root.Get("b").Value().(*Array).Items, 2)

	// appending to the end still needs a new item
	err = root.Get("b").At(2).CreatePath(String("x"), CanCreateEmptyListItems(false))
	require.ErrorIs(t, err, ErrIndexRange)
}

func TestCreatePathNegativeIndex(t *testing.T) {
	root := New(NewObject())

	err := root.Get("a").At(-1).CreatePath(String("x"))
	require.ErrorIs(t, err, ErrNegativeIndex)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "$.a[-1]", FormatPath(pathErr.Path))
}

func TestCreatePathReplacesRoot(t *testing.T) {
	root := New(String("scalar"))

	require.NoError(t, root.At(1).CreatePath(String("x")))
	requireJSON(t, `[null, "x"]`, root.Value())
}

func TestCreatePathReattachesWalker(t *testing.T) {
	root := New(NewObject())

	walker := root.Get("a").Get("b")
	_, isMarker := walker.Value().(*Error)
	require.True(t, isMarker)

	require.NoError(t, walker.CreatePath(NumberFromInt(42)))

	// the walker now points into the new containers
	parent, err := walker.Parent()
	require.NoError(t, err)

	object, ok := parent.Value().(*Object)
	require.True(t, ok)
	require.Same(t, object, root.Get("a").Value())

	require.NoError(t, walker.SetValue(NumberFromInt(43)))
	require.Equal(t, Value(Number("43")), root.Get("a").Get("b").Value())
}
