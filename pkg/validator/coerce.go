package validator

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// IsEmpty reports whether v counts as "not provided" for a required check:
// nil, an empty string or an empty selection (slice or array).
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// ToString converts scalar input to its textual form.
// Composite values are rejected.
func ToString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	case bool:
		return strconv.FormatBool(val), true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	}

	if f, ok := numeric(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// ToNumber converts numeric Go values and numeric strings to float64.
// NaN and infinities are rejected.
func ToNumber(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		n, ok := numeric(v)
		if !ok {
			return 0, false
		}
		f = n
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToBool converts checkbox style input.
// Accepted strings are true/false, on/off, yes/no and 1/0, case-insensitive.
func ToBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "on", "yes", "1":
			return true, true
		case "false", "off", "no", "0":
			return false, true
		}
		return false, false
	}

	if f, ok := numeric(v); ok {
		switch f {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

var (
	dateLayouts = []string{
		time.DateOnly,
		time.RFC3339Nano,
	}
	dateTimeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		time.DateTime,
		time.DateOnly,
	}
)

// ToTime parses dates and date-times.
// Numbers are treated as Unix milliseconds. Date-only values are truncated to midnight UTC.
func ToTime(v any, dateOnly bool) (time.Time, bool) {
	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case string:
		s := strings.TrimSpace(val)
		layouts := dateTimeLayouts
		if dateOnly {
			layouts = dateLayouts
		}
		parsed, ok := parseTime(s, layouts)
		if !ok {
			return time.Time{}, false
		}
		t = parsed
	default:
		ms, ok := numeric(v)
		if !ok {
			return time.Time{}, false
		}
		t = time.UnixMilli(int64(ms)).UTC()
	}

	if dateOnly {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t, true
}

// ParseTime parses a schema bound such as minDate.
func ParseTime(s string) (time.Time, bool) {
	return parseTime(strings.TrimSpace(s), dateTimeLayouts)
}

func parseTime(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Equal compares option values. Numbers compare by value so that 1, int64(1)
// and float64(1) from a JSON decoder are the same option.
func Equal(a, b any) bool {
	if fa, ok := numeric(a); ok {
		fb, ok := numeric(b)
		return ok && fa == fb
	}
	if _, ok := numeric(b); ok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
