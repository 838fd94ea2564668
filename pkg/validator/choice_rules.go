package validator

import "fmt"

// OneOf validates membership in a closed option set without coercion,
// except that numbers compare by value regardless of their Go type.
func OneOf(field string, value any, options []any) Rule {
	return Rule{
		Check: func() bool {
			for _, opt := range options {
				if Equal(value, opt) {
					return true
				}
			}
			return false
		},
		Error: newError(field, CodeOptions,
			"must be one of the allowed options",
			map[string]any{"options": options},
		),
	}
}

// Literal validates that value equals expected.
func Literal(field string, value, expected any) Rule {
	return Rule{
		Check: func() bool {
			return Equal(value, expected)
		},
		Error: newError(field, CodeLiteral,
			fmt.Sprintf("must equal %v", expected),
			map[string]any{"value": expected},
		),
	}
}
