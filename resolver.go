package schemakit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// FieldError is the per-field error shape form libraries consume.
type FieldError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FieldErrors maps paths to field errors.
type FieldErrors map[string]FieldError

// Error implements the error interface.
// Returns a summary of failing paths in sorted order.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	paths := make([]string, 0, len(e))
	for path := range e {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", path, e[path].Message))
	}
	return "validation error: " + strings.Join(parts, ", ")
}

// Get returns the message for path.
func (e FieldErrors) Get(path string) string {
	return e[path].Message
}

// Has checks if path has an error.
func (e FieldErrors) Has(path string) bool {
	_, ok := e[path]
	return ok
}

// IsEmpty returns true if there are no errors.
func (e FieldErrors) IsEmpty() bool {
	return len(e) == 0
}

// Resolver adapts a schema to a form library. Values are the sanitized
// record; errs is empty when the input is valid. A non-nil error is a
// system fault.
type Resolver func(ctx context.Context, data map[string]any) (values map[string]any, errs FieldErrors, err error)

// NewResolver binds s to v. The schema is compiled immediately so a
// misconfigured schema fails at construction.
func NewResolver(v *Validator, s *schema.Schema) (Resolver, error) {
	if v == nil {
		v = defaultValidator
	}
	plan, err := v.Compile(s)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, data map[string]any) (map[string]any, FieldErrors, error) {
		res, err := v.ValidateCompiled(ctx, plan, data)
		if err != nil {
			return nil, nil, err
		}
		return res.Value, ToFieldErrors(res), nil
	}, nil
}

// ToFieldErrors converts a result's errors to the form library shape.
func ToFieldErrors(res *Result) FieldErrors {
	errs := make(FieldErrors, len(res.Errors))
	for _, ve := range res.Errors {
		errs[ve.Field] = FieldError{Type: ve.Code, Message: ve.Message}
	}
	return errs
}
