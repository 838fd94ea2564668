package validator

import (
	"fmt"
	"math"
	"strconv"
)

func Min(field string, value, min float64) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: newError(field, CodeMin,
			fmt.Sprintf("must be at least %s", formatNumber(min)),
			map[string]any{"min": min},
		),
	}
}

func Max(field string, value, max float64) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: newError(field, CodeMax,
			fmt.Sprintf("must be at most %s", formatNumber(max)),
			map[string]any{"max": max},
		),
	}
}

// Integer rejects values with a fractional part.
func Integer(field string, value float64) Rule {
	return Rule{
		Check: func() bool {
			return value == math.Trunc(value)
		},
		Error: newError(field, CodeInteger, "must be a whole number", nil),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
