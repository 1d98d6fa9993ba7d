package feistel

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return b
}

func randomKeys(t *testing.T) (k1, k2, k3, k4 []byte) {
	t.Helper()
	return randomBytes(t, 16), randomBytes(t, 16), randomBytes(t, 16), randomBytes(t, 16)
}

func TestRoundTripExactMinimum(t *testing.T) {
	k1, k2, k3, k4 := randomKeys(t)
	block := randomBytes(t, MinBlockSize)

	ct, err := Encrypt(k1, k2, k3, k4, block)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	pt, err := Decrypt(k1, k2, k3, k4, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	if !bytes.Equal(pt, block) {
		t.Fatal("round-trip at minimum block size did not recover the original block")
	}
}

func TestRoundTripLargerBlocks(t *testing.T) {
	k1, k2, k3, k4 := randomKeys(t)

	for _, size := range []int{32, 33, 64, 1024, 4096} {
		block := randomBytes(t, size)

		ct, err := Encrypt(k1, k2, k3, k4, block)
		if err != nil {
			t.Fatalf("Encrypt(size=%d): %v", size, err)
		}
		pt, err := Decrypt(k1, k2, k3, k4, ct)
		if err != nil {
			t.Fatalf("Decrypt(size=%d): %v", size, err)
		}

		if !bytes.Equal(pt, block) {
			t.Fatalf("round-trip failed for block size %d", size)
		}
	}
}

func TestEncryptRejectsUndersizedBlock(t *testing.T) {
	k1, k2, k3, k4 := randomKeys(t)
	if _, err := Encrypt(k1, k2, k3, k4, randomBytes(t, MinBlockSize-1)); err == nil {
		t.Fatal("expected an error for a block shorter than MinBlockSize")
	}
}

func TestOddRoundInvolution(t *testing.T) {
	left := randomBytes(t, LeftSize)
	right := randomBytes(t, 32)
	key := randomBytes(t, 16)

	once, err := oddRound(left, right, key)
	if err != nil {
		t.Fatalf("oddRound: %v", err)
	}
	twice, err := oddRound(left, once, key)
	if err != nil {
		t.Fatalf("oddRound: %v", err)
	}

	if !bytes.Equal(twice, right) {
		t.Fatal("F_odd is not involutive on the right half for a held-constant left half and key")
	}
}

func TestEvenRoundInvolution(t *testing.T) {
	left := randomBytes(t, LeftSize)
	right := randomBytes(t, 32)
	key := randomBytes(t, 16)

	once := evenRound(left, right, key)
	twice := evenRound(once, right, key)

	if !bytes.Equal(twice, left) {
		t.Fatal("F_even is not involutive on the left half for a held-constant right half and key")
	}
}

func TestDifferentKeysProduceDifferentCiphertext(t *testing.T) {
	block := randomBytes(t, 64)
	k1, k2, k3, k4 := randomKeys(t)

	ctA, err := Encrypt(k1, k2, k3, k4, block)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	k1b := randomBytes(t, 16)
	ctB, err := Encrypt(k1b, k2, k3, k4, block)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if bytes.Equal(ctA, ctB) {
		t.Fatal("different round keys produced identical ciphertext")
	}
}

func TestFlippedCiphertextBitDoesNotRecoverOriginal(t *testing.T) {
	k1, k2, k3, k4 := randomKeys(t)
	block := randomBytes(t, 40)

	ct, err := Encrypt(k1, k2, k3, k4, block)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	ct[len(ct)-1] ^= 0x01

	pt, err := Decrypt(k1, k2, k3, k4, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	if bytes.Equal(pt, block) {
		t.Fatal("flipping a ciphertext bit should not still decrypt to the original plaintext")
	}
}
