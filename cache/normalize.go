package cache

import "strings"

// Normalize canonicalizes query text before embedding: runs of whitespace
// collapse to a single space, leading/trailing whitespace is trimmed, and
// the result is lowercased. Lookup and Store apply the same normalization
// so that embedding comparison is meaningful.
func Normalize(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
