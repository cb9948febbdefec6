package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

var dotRegex = regexp.MustCompile(`\.{2,}`)

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RemoveWhitespace drops every Unicode space, so "123 456" becomes "123456".
func RemoveWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
