// Package jwalk provides safe, chainable navigation over JSON trees.
//
// A [Walker] wraps one position in a tree. Stepping with [Walker.Get] and [Walker.At]
// never fails loudly: a missing key, an out-of-range index or a step into a scalar
// produces a Walker whose value is an error-marker ([*Error]), and every further step
// from there produces an error-marker as well. [Walker.Split] fans out into a [Set]
// of walkers that supports the same vocabulary and silently drops members for which
// a step fails.
//
//	walker, err := jwalk.ParseString(`{"a": 1, "b": [{"x": 1, "y": 2}, {"x": 4, "y": 5}],
//	    "c": {"c1": {"x": 11, "y": 22}, "c2": {"x": 44, "y": 55}}}`)
//
//	// the 'x' value of any item of any field matching [a-z]:  1, 4, 11, 44
//	for x := range walker.Split(jwalk.MustRegex("[a-z]")).Split(jwalk.Any).Get("x").All() {
//	    fmt.Println(x.Value())
//	}
//
// [Walker.CreatePath] builds the objects and arrays needed for a path to exist:
//
//	root := jwalk.New(jwalk.NewObject())
//	_ = root.Get("a").Get("b").CreatePath(jwalk.String("Hello"))
//	// {"a": {"b": "Hello"}}
//
// Values are parsed with [Parse], [Load] or [LoadFile], which falls back to
// [ParseJSONC] for files with comments. [CompactEncoder] writes trees in a
// compact, tab-indented format and [Unmarshal] maps them onto go types.
package jwalk
