package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "field is required", TranslationKey: "validation.required"},
	}
}

// MaxLen counts runes, not bytes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
		},
	}
}

// Matches validates value against a precompiled pattern. Empty values fail.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool { return value != "" && re.MatchString(value) },
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be %s", description),
			TranslationKey: "validation.regex_pattern",
		},
	}
}

// ValidOTP validates that a string is a valid OTP code with the specified length.
// The OTP must contain exactly the specified number of ASCII digits.
func ValidOTP(field, value string, length int) Rule {
	return Rule{
		Check: func() bool {
			if length <= 0 || len(value) != length {
				return false
			}
			for _, c := range value {
				if c > unicode.MaxASCII || !unicode.IsDigit(c) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be a %d-digit OTP code", length),
			TranslationKey: "validation.otp_code",
		},
	}
}
