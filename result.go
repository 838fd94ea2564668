package schemakit

import (
	"encoding/json"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// Result is the outcome of one validation.
type Result struct {
	// Value has one entry per schema field. Valid leaves hold coerced
	// values; invalid leaves hold the sanitized input.
	Value map[string]any

	// Errors holds at most one error per path in declaration order.
	// It is never nil.
	Errors validator.ValidationErrors
}

// Valid reports whether every field passed.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns Errors as an error, or nil when the result is valid.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

func (r *Result) MarshalJSON() ([]byte, error) {
	errs := r.Errors
	if errs == nil {
		errs = validator.ValidationErrors{}
	}
	return json.Marshal(struct {
		Valid  bool                       `json:"valid"`
		Value  map[string]any             `json:"value"`
		Errors validator.ValidationErrors `json:"errors"`
	}{
		Valid:  r.Valid(),
		Value:  r.Value,
		Errors: errs,
	})
}
