package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes the failure of one rule at one path.
type ValidationError struct {
	Field             string         `json:"-"`
	Code              string         `json:"code"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"-"`
	TranslationValues map[string]any `json:"-"`
}

// ValidationErrors is an ordered collection of validation errors.
// Order is significant: it follows the declaration order of the schema.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	_, ok := ve.Lookup(field)
	return ok
}

// Get returns the message reported for field, or an empty string.
func (ve ValidationErrors) Get(field string) string {
	err, _ := ve.Lookup(field)
	return err.Message
}

// Lookup returns the first error reported for field.
func (ve ValidationErrors) Lookup(field string) (ValidationError, bool) {
	for _, err := range ve {
		if err.Field == field {
			return err, true
		}
	}
	return ValidationError{}, false
}

// Fields returns the distinct paths in report order.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	seen := make(map[string]bool, len(ve))
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Codes maps every path to its error code.
func (ve ValidationErrors) Codes() map[string]string {
	codes := make(map[string]string, len(ve))
	for _, err := range ve {
		if _, ok := codes[err.Field]; !ok {
			codes[err.Field] = err.Code
		}
	}
	return codes
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// MarshalJSON encodes the errors as a path-keyed object preserving report order.
func (ve ValidationErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, err := range ve {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, marshalErr := json.Marshal(err.Field)
		if marshalErr != nil {
			return nil, marshalErr
		}
		val, marshalErr := json.Marshal(err)
		if marshalErr != nil {
			return nil, marshalErr
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a path-keyed object, keeping the key order of the input.
func (ve *ValidationErrors) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotAnObject
	}

	out := ValidationErrors{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		field, _ := tok.(string)

		var item ValidationError
		if err := dec.Decode(&item); err != nil {
			return err
		}
		item.Field = field
		out = append(out, item)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*ve = out
	return nil
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// First evaluates rules in order and returns the first failure.
// A field reports at most one error, so evaluation stops there.
func First(rules ...Rule) *ValidationError {
	for _, rule := range rules {
		if !rule.Check() {
			err := rule.Error
			return &err
		}
	}
	return nil
}

// Apply executes multiple validation rules and returns every failure.
func Apply(rules ...Rule) error {
	var errs ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// newError fills the translation metadata shared by every rule.
func newError(field, code, message string, values map[string]any) ValidationError {
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Code:              code,
		Message:           message,
		TranslationKey:    TranslationKey(code),
		TranslationValues: values,
	}
}

// TranslationKey returns the catalog key for a rule code.
func TranslationKey(code string) string {
	return "validation." + code
}
