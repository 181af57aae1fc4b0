package utils

import "strings"

// SanitizeString trims s and collapses inner whitespace runs into one space.
func SanitizeString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
