package jwalk

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// LoadFile loads the file at path using the default [Loader].
func LoadFile(path string) (*Walker, error) {
	return loader.LoadFile(path)
}

// The default Loader instance.
var loader Loader

// Loader loads JSON files. The zero value is ready to use.
type Loader struct {
	logger *slog.Logger

	// strict disables the fallback to ParseJSONC
	strict bool
}

func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	return &Loader{
		logger: logger,
		strict: l.strict,
	}
}

// Strict returns a Loader that only accepts strict JSON files.
func (l *Loader) Strict() *Loader {
	if l.strict {
		return l
	}

	return &Loader{
		logger: l.logger,
		strict: true,
	}
}

// LoadFile reads and parses the file at path. The content is parsed as strict JSON
// first. Only if that fails with a syntax error, it is parsed again with [ParseJSONC].
func (l *Loader) LoadFile(path string) (*Walker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	walker, err := Parse(data)
	switch {
	case err == nil:
		return walker, nil
	case l.strict || !errors.Is(err, ErrParse):
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	l.log().Debug("Strict parsing failed, retrying with comments allowed",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)

	walker, errJSONC := ParseJSONC(data)
	if errJSONC != nil {
		return nil, fmt.Errorf("load %q: %w", path, errors.Join(err, errJSONC))
	}

	return walker, nil
}

func (l *Loader) log() *slog.Logger {
	if l.logger == nil {
		return slog.Default()
	}

	return l.logger
}
