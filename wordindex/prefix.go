package wordindex

// expandPrefixes returns the prefix variants of word w (a retained
// word with 4 <= len(runes) <= 12), followed by w itself.
//
// For a word of code-point length n, it emits w[0..i+1]+"*" for each
// i from 3 to n-2 inclusive — i.e. prefixes of length 4, 5, ..., n-1 —
// then the full word with no asterisk. A word of length exactly 4
// yields no starred prefix, only the word itself.
func expandPrefixes(w string) []string {
	runes := []rune(w)
	n := len(runes)

	out := make([]string, 0, n-minWordLen+1)
	for i := 3; i <= n-2; i++ {
		out = append(out, string(runes[0:i+1])+"*")
	}
	out = append(out, w)
	return out
}

// expandAll runs expandPrefixes over every retained word, in the
// order token extraction produced them, and concatenates the results.
func expandAll(words []string) []string {
	out := make([]string, 0, len(words)*2)
	for _, w := range words {
		out = append(out, expandPrefixes(w)...)
	}
	return out
}
