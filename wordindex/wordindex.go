// Package wordindex builds and queries the searchable-encryption index
// over a file's plaintext: Unicode-aware token extraction, bounded
// prefix expansion, deterministic normalization, and MAC-based
// blinding so index entries are equality-comparable but not reversible
// without the key (component E).
package wordindex

import "unicode/utf8"

// Build extracts indexable tokens from plaintext, expands them into
// prefix variants, normalizes and blinds them under k6, and returns
// the resulting set of hex-encoded tags in the sorted order of their
// normalized tokens (the tags themselves are not sorted).
//
// If plaintext is not valid UTF-8, Build returns a nil, empty slice:
// the caller still encrypts the file, just without a search index.
func Build(plaintext []byte, k6 []byte) []string {
	if !utf8.Valid(plaintext) {
		return nil
	}

	words := extractWords(string(plaintext))
	if len(words) == 0 {
		return nil
	}

	variants := expandAll(words)

	normalized := make([]string, len(variants))
	for i, v := range variants {
		normalized[i] = normalize(v)
	}

	return blind(normalized, k6)
}

// Query normalizes a user-supplied search term (case-fold, ASCII
// lower, NFC — no token extraction, no prefix expansion) and returns
// its hex-encoded blinded form under k6, ready for equality lookup
// against a sidecar's token set.
func Query(term string, k6 []byte) string {
	n := normalize(term)
	return blind([]string{n}, k6)[0]
}
