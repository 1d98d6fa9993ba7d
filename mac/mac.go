// Package mac provides keyed authentication for ciphertexts and search
// tokens, built on HMAC-SHA256.
package mac

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Size is the length in bytes of a tag produced by Tag.
const Size = sha256.Size

// Tag computes HMAC-SHA256(key, msg).
func Tag(key, msg []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	return h.Sum(nil)
}

// TagHex computes Tag and returns it as lowercase hex.
func TagHex(key, msg []byte) string {
	return hex.EncodeToString(Tag(key, msg))
}

// Equal reports whether two tags match. Both sides are already public
// to anyone holding the sidecar, so a constant-time comparison buys
// nothing beyond hmac.Equal's habit of using one anyway.
func Equal(a, b []byte) bool {
	return hmac.Equal(a, b)
}

// EqualHex reports whether two hex-encoded tags are equal.
func EqualHex(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
