package schema

import (
	"context"

	"github.com/dmitrymomot/schemakit/pkg/pattern"
)

// Record is the sanitized top-level record handed to custom validators.
// Validators must treat it as read-only.
type Record = map[string]any

// CustomFunc is a synchronous cross-field check.
// A non-empty return value is the error message.
type CustomFunc func(value any, record Record) string

// AsyncFunc is a check that may block, e.g. a uniqueness lookup.
// A non-empty message is a validation failure; a non-nil error is a system
// fault and aborts the whole validation.
type AsyncFunc func(ctx context.Context, value any, record Record) (string, error)

// SanitizeFunc transforms a value after the built-in string transforms ran.
type SanitizeFunc func(value any) any

// Field describes how one value is sanitized and validated.
//
// Function-valued attributes cannot be serialized; a description read from
// JSON or YAML refers to them by name (Sanitizer, Validator, AsyncValidator)
// and Compile resolves the names.
type Field struct {
	Kind     Kind `json:"kind" yaml:"kind"`
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Sanitization.
	Trim               bool         `json:"trim,omitempty" yaml:"trim,omitempty"`
	Lowercase          bool         `json:"lowercase,omitempty" yaml:"lowercase,omitempty"`
	Uppercase          bool         `json:"uppercase,omitempty" yaml:"uppercase,omitempty"`
	CollapseWhitespace bool         `json:"collapseWhitespace,omitempty" yaml:"collapseWhitespace,omitempty"`
	Normalize          bool         `json:"normalize,omitempty" yaml:"normalize,omitempty"`
	StripHTML          bool         `json:"stripHtml,omitempty" yaml:"stripHtml,omitempty"`
	Sanitizer          string       `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	Sanitize           SanitizeFunc `json:"-" yaml:"-"`

	// Text constraints.
	MinLength *int            `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int            `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string          `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format    *pattern.Config `json:"format,omitempty" yaml:"format,omitempty"`

	// Numeric constraints.
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Integer bool     `json:"integer,omitempty" yaml:"integer,omitempty"`

	// Date bounds, RFC 3339 or 2006-01-02.
	MinDate string `json:"minDate,omitempty" yaml:"minDate,omitempty"`
	MaxDate string `json:"maxDate,omitempty" yaml:"maxDate,omitempty"`

	// Choices.
	Options []any `json:"options,omitempty" yaml:"options,omitempty"`
	Value   any   `json:"value,omitempty" yaml:"value,omitempty"`

	// Arrays.
	MinItems  *int   `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems  *int   `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	Separator string `json:"separator,omitempty" yaml:"separator,omitempty"`

	// Messages overrides default messages keyed by rule code.
	Messages           map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
	UnionErrorMessage  string            `json:"unionErrorMessage,omitempty" yaml:"unionErrorMessage,omitempty"`
	RecordErrorMessage string            `json:"recordErrorMessage,omitempty" yaml:"recordErrorMessage,omitempty"`

	// Composites.
	Schema       *Schema  `json:"schema,omitempty" yaml:"schema,omitempty"`
	ElementType  *Field   `json:"elementType,omitempty" yaml:"elementType,omitempty"`
	TupleSchemas []*Field `json:"tupleSchemas,omitempty" yaml:"tupleSchemas,omitempty"`
	ValueSchema  *Field   `json:"valueSchema,omitempty" yaml:"valueSchema,omitempty"`
	Types        []*Field `json:"types,omitempty" yaml:"types,omitempty"`

	// Custom checks.
	Validator      string     `json:"validator,omitempty" yaml:"validator,omitempty"`
	AsyncValidator string     `json:"asyncValidator,omitempty" yaml:"asyncValidator,omitempty"`
	Validate       CustomFunc `json:"-" yaml:"-"`
	ValidateAsync  AsyncFunc  `json:"-" yaml:"-"`
}

// Ptr returns a pointer to v. Handy for the optional bound attributes.
func Ptr[T any](v T) *T {
	return &v
}
