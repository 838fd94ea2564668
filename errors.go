package schemakit

import "errors"

var (
	// ErrValidatorFault wraps errors returned by async validators and panics
	// raised in sync or async validators. It signals a system fault, never an
	// invalid value.
	ErrValidatorFault = errors.New("schemakit: validator failed")

	ErrNilSchema = errors.New("schemakit: schema is nil")
)
