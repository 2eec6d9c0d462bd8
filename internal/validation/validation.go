// Package validation holds the pure field checks applied to inbound
// submissions. No function here has side effects.
package validation

import (
	"html"
	"regexp"
	"strings"
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegexp = regexp.MustCompile(`^[+]?[\d\s\-()]{10,15}$`)
	phoneStrip  = regexp.MustCompile(`[^0-9+\-\s()]`)
)

// Sanitize trims surrounding whitespace and HTML-escapes the value so it is
// inert in any downstream rendering.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// ValidEmail reports whether the value matches the standard address grammar.
func ValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// ValidPhone strips every character except digits, +, -, parentheses and
// spaces, then requires 10-15 remaining characters with at most a leading +.
func ValidPhone(phone string) bool {
	return phoneRegexp.MatchString(phoneStrip.ReplaceAllString(phone, ""))
}

// MinLen reports whether the trimmed value is at least n bytes long.
func MinLen(s string, n int) bool {
	return len(strings.TrimSpace(s)) >= n
}
