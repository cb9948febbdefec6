package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// commonPasswords lists frequently breached passwords, compared case-insensitively.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password12": {}, "password123": {}, "password!": {},
	"123456": {}, "1234567": {}, "12345678": {}, "123456789": {}, "1234567890": {},
	"12341234": {}, "111111": {}, "000000": {}, "123123": {}, "654321": {},
	"qwerty": {}, "qwerty1": {}, "qwerty12": {}, "qwerty123": {}, "qwertyuiop": {},
	"1q2w3e4r": {}, "1qaz2wsx": {}, "zaq12wsx": {}, "qazwsx": {}, "asdfghjkl": {},
	"abc123": {}, "abcd1234": {}, "a1b2c3d4": {}, "iloveyou": {}, "letmein": {},
	"welcome": {}, "welcome1": {}, "admin": {}, "admin123": {}, "administrator": {},
	"monkey": {}, "dragon": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "superman": {}, "batman": {}, "trustno1": {}, "master": {},
	"secret": {}, "shadow": {}, "passw0rd": {}, "p@ssw0rd": {}, "changeme": {},
}

// PasswordStrengthConfig controls StrongPassword.
type PasswordStrengthConfig struct {
	MinLength      int
	MaxLength      int
	MinCharClasses int // Of: upper, lower, digit, other
}

// DefaultPasswordStrength is 8-128 characters from at least two character classes.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength:      8,
		MaxLength:      128,
		MinCharClasses: 2,
	}
}

func StrongPassword(field, value string, config PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			if n < config.MinLength || n > config.MaxLength {
				return false
			}

			var upper, lower, digit, other bool
			for _, r := range value {
				switch {
				case unicode.IsUpper(r):
					upper = true
				case unicode.IsLower(r):
					lower = true
				case unicode.IsDigit(r):
					digit = true
				default:
					other = true
				}
			}

			classes := 0
			for _, has := range []bool{upper, lower, digit, other} {
				if has {
					classes++
				}
			}
			return classes >= config.MinCharClasses
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf("password must be %d-%d characters and mix at least %d character types",
				config.MinLength, config.MaxLength, config.MinCharClasses),
			TranslationKey: "validation.password_strength",
		},
	}
}

func NotCommonPassword(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, common := commonPasswords[strings.ToLower(value)]
			return !common
		},
		Error: ValidationError{Field: field, Message: "password is too common", TranslationKey: "validation.common_password"},
	}
}
