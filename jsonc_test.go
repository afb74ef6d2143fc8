package jwalk

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseJSONC(t *testing.T) {
	input := `// settings
	{
		/* block
		   comment */
		"url": "http://example.com//path", // trailing
		"pattern": "/* not a comment */",
		"list": [1, 2, 3,],
	}`

	walker, err := ParseJSONC([]byte(input))
	require.NoError(t, err)

	require.Equal(t, []string{"url", "pattern", "list"}, walker.Value().(*Object).Keys())
	require.Equal(t, Value(String("http://example.com//path")), walker.Get("url").Value())
	require.Equal(t, Value(String("/* not a comment */")), walker.Get("pattern").Value())
	requireJSON(t, `[1, 2, 3]`, walker.Get("list").Value())
}

func TestParseJSONCDoesNotModifyInput(t *testing.T) {
	input := []byte(`{"a": 1, /* comment */}`)
	original := string(input)

	_, err := ParseJSONC(input)
	require.NoError(t, err)
	require.Equal(t, original, string(input))
}

func TestParseJSONCStrictInput(t *testing.T) {
	walker, err := ParseJSONC([]byte(exampleJSON))
	require.NoError(t, err)
	requireJSON(t, exampleJSON, walker.Value())
}

func TestParseJSONCInvalid(t *testing.T) {
	inputs := []string{
		`{"a": 1 /* unterminated`,
		`{"a": }`,
		`[1, 2`,
		`{} {}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseJSONC([]byte(input))
			require.ErrorIs(t, err, ErrParse)
		})
	}
}
