package jwalk

import (
	"bytes"
	"fmt"

	"github.com/tailscale/hujson"
)

// ParseJSONC parses JSON that may contain line comments, block comments
// and trailing commas. Comment-like sequences within strings are kept as they are.
func ParseJSONC(data []byte) (*Walker, error) {
	standard, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return Parse(standard)
}
