package wordindex

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var fold = cases.Fold()

// normalize canonicalizes s the way both indexing and querying must:
// Unicode case-folding, then ASCII lower-casing (a no-op for the
// overwhelming majority of inputs, since case-folding already
// subsumes it — kept for bit-compatibility with the defined sequence),
// then NFC normalization.
func normalize(s string) string {
	s = fold.String(s)
	s = asciiLower(s)
	s = norm.NFC.String(s)
	return s
}

// asciiLower lowers only the ASCII letters A-Z, leaving every other
// code point untouched.
func asciiLower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
