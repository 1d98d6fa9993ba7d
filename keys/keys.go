// Package keys turns a password and a per-file salt into the subkey
// bundle the rest of the engine operates on: PBKDF2-HMAC-SHA256 for
// master-key derivation (component A), and an AES-128-CTR keystream
// expansion for the key schedule (component B).
package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length in bytes of a freshly generated per-file salt.
	SaltSize = 16

	// MasterKeySize is the length in bytes of the derived master key.
	MasterKeySize = 32

	// Iterations is the PBKDF2 iteration count mandated for derivation.
	Iterations = 250_000

	// SubkeySize is the length in bytes of each subkey in a Bundle.
	SubkeySize = 16

	// subkeyCount is the number of 16-byte subkeys the schedule produces.
	subkeyCount = 7

	// scheduleKeystreamSize is subkeyCount*SubkeySize: the number of
	// keystream bytes the AES-128-CTR expansion must produce.
	scheduleKeystreamSize = subkeyCount * SubkeySize
)

// Bundle holds the seven 16-byte subkeys produced by Schedule, in the
// fixed order the engine relies on everywhere: validator, k1..k4 (the
// Feistel round keys), k5 (the envelope MAC key), k6 (the search-term
// blinding key).
type Bundle struct {
	Validator []byte
	K1        []byte
	K2        []byte
	K3        []byte
	K4        []byte
	K5        []byte
	K6        []byte
}

// NewSalt generates a fresh, random 16-byte salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("keys: failed to generate salt: %w", err)
	}
	return salt, nil
}

// Derive runs PBKDF2-HMAC-SHA256 over the UTF-8 password and salt,
// producing a 32-byte master key. It is a pure function of its inputs.
func Derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, MasterKeySize, sha256.New)
}

// Schedule expands a 32-byte master key into the seven-subkey Bundle.
// master[0:16] is the AES-128 key, master[16:24] is the CTR nonce, and
// master[24:32] is the initial counter value; this split is
// load-bearing for sidecar compatibility and must not change.
func Schedule(master []byte) (Bundle, error) {
	if len(master) != MasterKeySize {
		return Bundle{}, fmt.Errorf("keys: master key must be %d bytes, got %d", MasterKeySize, len(master))
	}

	block, err := aes.NewCipher(master[0:16])
	if err != nil {
		return Bundle{}, fmt.Errorf("keys: failed to init AES block cipher: %w", err)
	}

	stream := cipher.NewCTR(block, master[16:32])
	keystream := make([]byte, scheduleKeystreamSize)
	stream.XORKeyStream(keystream, keystream)

	return Bundle{
		Validator: keystream[0:16],
		K1:        keystream[16:32],
		K2:        keystream[32:48],
		K3:        keystream[48:64],
		K4:        keystream[64:80],
		K5:        keystream[80:96],
		K6:        keystream[96:112],
	}, nil
}

// Zero overwrites b with zeros. The engine never relies on this for
// correctness; it narrows the window sensitive bytes sit in memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
