// Package feistel implements the engine's four-round balanced Feistel
// cipher: a fixed-geometry block cipher built from AES-128-CTR (odd
// rounds) and HMAC-SHA256 (even rounds). It is not a general-purpose
// cipher; the block layout and round count are fixed by design.
package feistel

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/haugstad/fenc/mac"
)

// LeftSize is the fixed length in bytes of the left half of a block.
const LeftSize = 16

// MinBlockSize is the smallest block this cipher can operate on: a
// full left half plus a right half of at least the same length.
const MinBlockSize = LeftSize + LeftSize

// split divides block into its left and right halves per the fixed
// geometry: |L| = LeftSize, |R| = len(block) - LeftSize.
func split(block []byte) (left, right []byte, err error) {
	if len(block) < MinBlockSize {
		return nil, nil, fmt.Errorf("feistel: block must be at least %d bytes, got %d", MinBlockSize, len(block))
	}
	return block[:LeftSize], block[LeftSize:], nil
}

// oddRound applies F_odd: the right half is masked with an AES-128-CTR
// keystream whose nonce/counter IV is the left half; the left half is
// unchanged. Self-inverse: calling it twice with the same round key
// and a held-constant left half restores the original right half.
func oddRound(left, right, roundKey []byte) ([]byte, error) {
	block, err := aes.NewCipher(roundKey)
	if err != nil {
		return nil, fmt.Errorf("feistel: odd round AES init: %w", err)
	}

	stream := cipher.NewCTR(block, left)
	out := make([]byte, len(right))
	stream.XORKeyStream(out, right)
	return out, nil
}

// evenRound applies F_even: the left half is masked with the first 16
// bytes of HMAC-SHA256(roundKey, right); the right half is unchanged.
// Self-inverse for the same reason as oddRound.
func evenRound(left, right, roundKey []byte) []byte {
	tag := mac.Tag(roundKey, right)
	out := make([]byte, LeftSize)
	for i := 0; i < LeftSize; i++ {
		out[i] = left[i] ^ tag[i]
	}
	return out
}

// Encrypt runs the fixed four-round sequence: F_odd(k1), F_even(k2),
// F_odd(k3), F_even(k4). block is not mutated; a new slice is returned.
func Encrypt(k1, k2, k3, k4, block []byte) ([]byte, error) {
	left, right, err := split(block)
	if err != nil {
		return nil, err
	}

	r1Right, err := oddRound(left, right, k1)
	if err != nil {
		return nil, err
	}
	r1Left := left

	r2Left := evenRound(r1Left, r1Right, k2)
	r2Right := r1Right

	r3Right, err := oddRound(r2Left, r2Right, k3)
	if err != nil {
		return nil, err
	}
	r3Left := r2Left

	outLeft := evenRound(r3Left, r3Right, k4)
	outRight := r3Right

	return join(outLeft, outRight), nil
}

// Decrypt reverses Encrypt: F_even(k4), F_odd(k3), F_even(k2), F_odd(k1).
func Decrypt(k1, k2, k3, k4, block []byte) ([]byte, error) {
	left, right, err := split(block)
	if err != nil {
		return nil, err
	}

	r1Left := evenRound(left, right, k4)
	r1Right := right

	r2Right, err := oddRound(r1Left, r1Right, k3)
	if err != nil {
		return nil, err
	}
	r2Left := r1Left

	r3Left := evenRound(r2Left, r2Right, k2)
	r3Right := r2Right

	outRight, err := oddRound(r3Left, r3Right, k1)
	if err != nil {
		return nil, err
	}
	outLeft := r3Left

	return join(outLeft, outRight), nil
}

func join(left, right []byte) []byte {
	out := make([]byte, len(left)+len(right))
	copy(out, left)
	copy(out[len(left):], right)
	return out
}
