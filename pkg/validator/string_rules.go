package validator

import (
	"fmt"
	"unicode/utf8"
)

// Required fails when present is false.
// Callers decide presence with IsEmpty, which knows every field shape.
func Required(field string, present bool) Rule {
	return Rule{
		Check: func() bool {
			return present
		},
		Error: newError(field, CodeRequired, "field is required", nil),
	}
}

// MinLength counts runes, not bytes, so multi-byte input is measured as typed.
func MinLength(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: newError(field, CodeMinLength,
			fmt.Sprintf("must be at least %d characters long", min),
			map[string]any{"min": min},
		),
	}
}

func MaxLength(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: newError(field, CodeMaxLength,
			fmt.Sprintf("must be at most %d characters long", max),
			map[string]any{"max": max},
		),
	}
}

// TypeMismatch is reported when a value cannot be coerced to the field kind.
func TypeMismatch(field, expected string) ValidationError {
	return newError(field, CodeType,
		fmt.Sprintf("must be a valid %s", expected),
		map[string]any{"type": expected},
	)
}

// Custom wraps the message returned by a user validator.
func Custom(field, message string) ValidationError {
	return newError(field, CodeCustom, message, nil)
}
