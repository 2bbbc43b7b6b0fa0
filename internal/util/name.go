package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CleanName trims a display name and collapses inner runs of whitespace.
func CleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NameKey returns the comparison key for a user-facing name.
// Two category names are the same category when their keys are equal:
// "Reading", " reading " and "READING" share one key.
func NameKey(name string) string {
	s := norm.NFKC.String(CleanName(name))
	// Casers carry state, so each call gets its own.
	return cases.Fold().String(s)
}
