package wordindex

import (
	"sort"

	"github.com/haugstad/fenc/mac"
)

// blind deduplicates the normalized tokens, sorts them lexicographically,
// and returns the hex-encoded HMAC-SHA256 of each under k6, preserving
// that sorted order.
func blind(tokens []string, k6 []byte) []string {
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	sort.Strings(unique)

	out := make([]string, len(unique))
	for i, t := range unique {
		out[i] = mac.TagHex(k6, []byte(t))
	}
	return out
}
