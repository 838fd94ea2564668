package validator

import "fmt"

func MinItems(field string, count, min int) Rule {
	return Rule{
		Check: func() bool {
			return count >= min
		},
		Error: newError(field, CodeMinItems,
			fmt.Sprintf("must have at least %d items", min),
			map[string]any{"min": min},
		),
	}
}

func MaxItems(field string, count, max int) Rule {
	return Rule{
		Check: func() bool {
			return count <= max
		},
		Error: newError(field, CodeMaxItems,
			fmt.Sprintf("must have at most %d items", max),
			map[string]any{"max": max},
		),
	}
}

func TupleLength(field string, count, expected int) Rule {
	return Rule{
		Check: func() bool {
			return count == expected
		},
		Error: newError(field, CodeTupleLength,
			fmt.Sprintf("must have exactly %d items", expected),
			map[string]any{"length": expected, "actual": count},
		),
	}
}

// Union is reported when no alternative of a union accepts the value.
func Union(field string) ValidationError {
	return newError(field, CodeUnion, "does not match any of the allowed types", nil)
}

// Record is reported once for a record with at least one invalid entry.
func Record(field string, invalidKeys []string) ValidationError {
	return newError(field, CodeRecord,
		"contains invalid entries",
		map[string]any{"keys": invalidKeys},
	)
}
