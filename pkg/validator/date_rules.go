package validator

import (
	"fmt"
	"time"
)

// MinDate fails when value is before min. Equal instants pass.
func MinDate(field string, value, min time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !value.Before(min)
		},
		Error: newError(field, CodeMinDate,
			fmt.Sprintf("must be on or after %s", formatDate(min)),
			map[string]any{"min": formatDate(min)},
		),
	}
}

// MaxDate fails when value is after max. Equal instants pass.
func MaxDate(field string, value, max time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !value.After(max)
		},
		Error: newError(field, CodeMaxDate,
			fmt.Sprintf("must be on or before %s", formatDate(max)),
			map[string]any{"max": formatDate(max)},
		),
	}
}

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
