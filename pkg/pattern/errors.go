package pattern

import "errors"

var (
	// ErrUnknownType is returned when Config.Type does not name a generator.
	ErrUnknownType = errors.New("pattern: unknown type")

	// ErrUnsupportedParameter is returned when a generator does not support the given parameter value.
	ErrUnsupportedParameter = errors.New("pattern: unsupported parameter")

	// ErrInvalidSource is returned when a raw source cannot be compiled.
	ErrInvalidSource = errors.New("pattern: invalid source")
)
