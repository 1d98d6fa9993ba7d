package wordindex

import (
	"regexp"
	"sort"
)

// tokenPattern matches maximal runs of Unicode letters, nonspacing
// marks, decimal numbers, or connector punctuation.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{Mn}\p{Nd}\p{Pc}]+`)

const (
	minWordLen = 4
	maxWordLen = 12
)

// extractWords returns the distinct-by-position matches of tokenPattern
// in text whose code-point length falls in [minWordLen, maxWordLen],
// sorted lexicographically in code-point order.
func extractWords(text string) []string {
	matches := tokenPattern.FindAllString(text, -1)

	words := make([]string, 0, len(matches))
	for _, m := range matches {
		if n := len([]rune(m)); n >= minWordLen && n <= maxWordLen {
			words = append(words, m)
		}
	}

	sort.Strings(words)
	return words
}
