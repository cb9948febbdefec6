// Package sanitizer normalizes user input before validation and storage.
// Functions are pure string transforms that compose with Apply and Compose:
//
//	code := sanitizer.Apply(raw, sanitizer.Trim, sanitizer.RemoveWhitespace)
//	identity := sanitizer.NormalizeEmail(raw)
package sanitizer
