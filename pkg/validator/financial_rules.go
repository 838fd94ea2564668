package validator

import "strings"

// Luhn validates a card number checksum. Spaces and dashes are ignored.
func Luhn(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return LuhnValid(value)
		},
		Error: newError(field, CodeCustom, "invalid credit card number", nil),
	}
}

// LuhnValid reports whether value passes the Luhn checksum with 13 to 19 digits.
func LuhnValid(value string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(value)
	if len(cleaned) < 13 || len(cleaned) > 19 {
		return false
	}

	sum := 0
	isEven := false

	for i := len(cleaned) - 1; i >= 0; i-- {
		c := cleaned[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')

		if isEven {
			digit *= 2
			if digit > 9 {
				digit = digit/10 + digit%10
			}
		}

		sum += digit
		isEven = !isEven
	}

	return sum%10 == 0
}
