package schema

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSchema  = errors.New("invalid schema")
	ErrUnknownFormat  = errors.New("unknown schema format")
	ErrDuplicateField = errors.New("duplicate field name")
	ErrNotAMapping    = errors.New("schema must be a mapping of field names")
)

// SchemaError reports a misconfigured field found while compiling.
// It is a programmer error and never appears in validation results.
type SchemaError struct {
	Path      string // dotted location of the field, e.g. "address.zip" or "tags.elementType"
	Attribute string // offending attribute, e.g. "options"
	Reason    string
	Err       error // underlying cause, if any
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("invalid schema: %s", e.Path)
	if e.Attribute != "" {
		msg += "." + e.Attribute
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes every SchemaError match ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
