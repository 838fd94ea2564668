package registry

import "errors"

var (
	ErrNotFound    = errors.New("schema not found")
	ErrInvalidName = errors.New("invalid schema name")
	ErrNoStore     = errors.New("registry has no store")
)
