package analysis

import "strings"

// Normalize converts raw ticket text into a stable grouping key: surrounding
// whitespace trimmed, lowercased. No stemming or tokenization; an empty or
// missing text normalizes to the empty string, which still forms a valid
// (degenerate) group key.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
