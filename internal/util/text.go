package util

import "strings"

// Truncate shortens s to at most n runes, appending an ellipsis when the
// text was cut. Safe for multi-byte Turkish characters.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// NormalizeSpace collapses runs of whitespace into single spaces and trims
// the ends. Corpus bodies often carry PDF line-wrap artifacts.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
