package validator

import "regexp"

// MatchesPattern validates value against a pre-compiled expression.
// The expression decides anchoring; schema patterns are always full-string.
func MatchesPattern(field, value string, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool {
			return re.MatchString(value)
		},
		Error: newError(field, CodePattern,
			"has an invalid format",
			map[string]any{"pattern": re.String()},
		),
	}
}
