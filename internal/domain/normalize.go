package domain

import (
	"strings"
)

// NormalizeName prepares an item name for case-insensitive uniqueness:
// surrounding whitespace is trimmed, runs of whitespace collapse to one
// space, and letters are lowercased.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
