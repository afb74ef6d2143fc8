package jwalk

import (
	"strconv"
	"strings"
)

// Key is one step of a path: either the name of an object field or an array index.
// The zero Key is the field with the empty name.
type Key struct {
	name    string
	index   int
	isIndex bool
}

func Field(name string) Key {
	return Key{name: name}
}

func Index(index int) Key {
	return Key{index: index, isIndex: true}
}

// Field returns the field name, or false if the key is an index.
func (k Key) Field() (string, bool) {
	return k.name, !k.isIndex
}

// Index returns the array index, or false if the key is a field name.
func (k Key) Index() (int, bool) {
	return k.index, k.isIndex
}

func (k Key) IsIndex() bool {
	return k.isIndex
}

func (k Key) String() string {
	if k.isIndex {
		return "[" + strconv.Itoa(k.index) + "]"
	}

	return fieldString(k.name)
}

// FormatPath renders a path starting at the root `$`,
// e.g. `$.a[3].'dotted.key'`.
func FormatPath(path []Key) string {
	var buf strings.Builder
	buf.WriteByte('$')

	for _, key := range path {
		if !key.isIndex {
			buf.WriteByte('.')
		}

		buf.WriteString(key.String())
	}

	return buf.String()
}

func fieldString(name string) string {
	if name != "" && strings.IndexAny(name, "'.*$[] ") == -1 {
		return name
	}

	return "'" + strings.ReplaceAll(name, "'", `\'`) + "'"
}
