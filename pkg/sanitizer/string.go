package sanitizer

import (
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower converts a string to lowercase.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// ToUpper converts a string to uppercase.
func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims the result.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeUnicode converts s to Unicode normalization form C so visually
// identical inputs compare equal after sanitization.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// StripHTML removes every tag and attribute. The result is HTML-safe text:
// entities produced by the policy are kept so repeated calls are stable.
func StripHTML(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy.Sanitize(s)
}

// KeepDigits keeps only numeric digits.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// RemoveControlChars removes control characters from a string,
// keeping only printable characters and common whitespace.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// SingleLine converts a multi-line string to a single line.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return CollapseWhitespace(s)
}

// ToKebabCase converts a string to kebab-case by replacing non-alphanumeric
// characters with hyphens and normalizing multiple hyphens.
func ToKebabCase(s string) string {
	return joinWords(s, '-')
}

// ToSnakeCase converts a string to snake_case.
func ToSnakeCase(s string) string {
	return joinWords(s, '_')
}

func joinWords(s string, sep rune) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	prevSep := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSep = false
			continue
		}
		if !prevSep {
			b.WriteRune(sep)
			prevSep = true
		}
	}

	return strings.Trim(b.String(), string(sep))
}

// SplitList splits s on sep, trims every item and drops the empty ones.
// An empty separator splits on whitespace.
func SplitList(s, sep string) []string {
	var parts []string
	if sep == "" {
		parts = strings.Fields(s)
	} else {
		parts = strings.Split(s, sep)
	}

	result := make([]string, 0, len(parts))
	for _, item := range parts {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
