// Package envelope drives components A-E to encrypt, decrypt, and
// search named files with JSON sidecar metadata (component F).
package envelope

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haugstad/fenc/feistel"
	"github.com/haugstad/fenc/keys"
	"github.com/haugstad/fenc/mac"
	"github.com/haugstad/fenc/wordindex"
)

// MinFileSize is the smallest plaintext file the engine will encrypt:
// a 16-byte left half plus a right half of at least the same length.
const MinFileSize = feistel.MinBlockSize

type fileRef struct {
	path string
	dir  string
	name string
	size int64
}

func statFiles(paths []string) (refs []fileRef, invalid []string) {
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil || !fi.Mode().IsRegular() {
			invalid = append(invalid, filepath.Base(p))
			continue
		}
		refs = append(refs, fileRef{
			path: p,
			dir:  filepath.Dir(p),
			name: filepath.Base(p),
			size: fi.Size(),
		})
	}
	return refs, invalid
}

// EncryptFiles encrypts every named file in place with password,
// validating every file before mutating any (spec.md §4.F "Batch
// atomicity"). On success each input file has been overwritten with
// its ciphertext and a sidecar has been written beside it.
func EncryptFiles(paths []string, password string) ([]EncryptResult, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	refs, invalid := statFiles(paths)
	if len(invalid) > 0 {
		return nil, newInvalidFilepathsError(invalid)
	}

	var tooSmall []string
	for _, r := range refs {
		if r.size < MinFileSize {
			tooSmall = append(tooSmall, r.name)
		}
	}
	if len(tooSmall) > 0 {
		return nil, newFileSizeError(tooSmall)
	}

	var already []string
	for _, r := range refs {
		if hasSidecar(r.dir, r.name) {
			already = append(already, r.name)
		}
	}
	if len(already) > 0 {
		return nil, newAlreadyEncryptedError(already)
	}

	results := make([]EncryptResult, 0, len(refs))
	for _, r := range refs {
		res, err := encryptOne(r, password)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func encryptOne(r fileRef, password string) (EncryptResult, error) {
	salt, err := keys.NewSalt()
	if err != nil {
		return EncryptResult{}, err
	}

	master := keys.Derive(password, salt)
	defer keys.Zero(master)

	bundle, err := keys.Schedule(master)
	if err != nil {
		return EncryptResult{}, err
	}
	defer zeroBundle(&bundle)

	plaintext, err := os.ReadFile(r.path)
	if err != nil {
		return EncryptResult{}, fmt.Errorf("envelope: failed to read %s: %w", r.name, err)
	}

	terms := wordindex.Build(plaintext, bundle.K6)
	if terms == nil {
		terms = []string{}
	}

	ciphertext, err := feistel.Encrypt(bundle.K1, bundle.K2, bundle.K3, bundle.K4, plaintext)
	if err != nil {
		return EncryptResult{}, fmt.Errorf("envelope: failed to encrypt %s: %w", r.name, err)
	}

	if err := writeAtomic(r.path, ciphertext); err != nil {
		return EncryptResult{}, err
	}

	sc := Sidecar{
		Salt:      hex.EncodeToString(salt),
		Validator: hex.EncodeToString(bundle.Validator),
		MAC:       mac.TagHex(bundle.K5, ciphertext),
		Terms:     terms,
	}
	if err := writeSidecar(r.dir, r.name, sc); err != nil {
		return EncryptResult{}, err
	}

	return EncryptResult{
		Filename:     r.name,
		MasterKeyHex: hex.EncodeToString(master),
	}, nil
}

// decryptPrep holds everything derived from a file's sidecar during
// preflight, so the execution phase never has to re-derive keys.
type decryptPrep struct {
	ref     fileRef
	sidecar Sidecar
	master  []byte
	bundle  keys.Bundle
}

// DecryptFiles decrypts every named file in place with password,
// validating existence, sidecar presence, and password correctness
// for every file before mutating any. A per-file MAC mismatch
// (tamper) is reported in that file's result without aborting the
// rest of the batch.
func DecryptFiles(paths []string, password string) ([]DecryptResult, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	refs, invalid := statFiles(paths)
	if len(invalid) > 0 {
		return nil, newInvalidFilepathsError(invalid)
	}

	var unencrypted []string
	for _, r := range refs {
		if !hasSidecar(r.dir, r.name) {
			unencrypted = append(unencrypted, r.name)
		}
	}
	if len(unencrypted) > 0 {
		return nil, newUnencryptedError(unencrypted)
	}

	var preps []decryptPrep
	var mismatched []string
	for _, r := range refs {
		sc, err := readSidecar(r.dir, r.name)
		if err != nil {
			return nil, err
		}

		salt, err := hex.DecodeString(sc.Salt)
		if err != nil {
			return nil, fmt.Errorf("envelope: sidecar for %s has malformed salt: %w", r.name, err)
		}

		master := keys.Derive(password, salt)
		bundle, err := keys.Schedule(master)
		if err != nil {
			return nil, err
		}

		if !mac.EqualHex(hex.EncodeToString(bundle.Validator), sc.Validator) {
			mismatched = append(mismatched, r.name)
			keys.Zero(master)
			zeroBundle(&bundle)
			continue
		}

		preps = append(preps, decryptPrep{ref: r, sidecar: sc, master: master, bundle: bundle})
	}
	if len(mismatched) > 0 {
		for _, p := range preps {
			keys.Zero(p.master)
			zeroBundle(&p.bundle)
		}
		return nil, newAuthError(mismatched)
	}

	results := make([]DecryptResult, 0, len(preps))
	for _, p := range preps {
		res, err := decryptOne(p)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func decryptOne(p decryptPrep) (DecryptResult, error) {
	defer keys.Zero(p.master)
	defer zeroBundle(&p.bundle)

	ciphertext, err := os.ReadFile(p.ref.path)
	if err != nil {
		return DecryptResult{}, fmt.Errorf("envelope: failed to read %s: %w", p.ref.name, err)
	}

	if !mac.EqualHex(mac.TagHex(p.bundle.K5, ciphertext), p.sidecar.MAC) {
		return DecryptResult{Filename: p.ref.name, Tampered: true}, nil
	}

	plaintext, err := feistel.Decrypt(p.bundle.K1, p.bundle.K2, p.bundle.K3, p.bundle.K4, ciphertext)
	if err != nil {
		return DecryptResult{}, fmt.Errorf("envelope: failed to decrypt %s: %w", p.ref.name, err)
	}

	if err := writeAtomic(p.ref.path, plaintext); err != nil {
		return DecryptResult{}, err
	}
	if err := removeSidecar(p.ref.dir, p.ref.name); err != nil {
		return DecryptResult{}, err
	}

	return DecryptResult{
		Filename:     p.ref.name,
		MasterKeyHex: hex.EncodeToString(p.master),
		ValidatorHex: hex.EncodeToString(p.bundle.Validator),
		K1Hex:        hex.EncodeToString(p.bundle.K1),
		K2Hex:        hex.EncodeToString(p.bundle.K2),
		K3Hex:        hex.EncodeToString(p.bundle.K3),
		K4Hex:        hex.EncodeToString(p.bundle.K4),
		MACKeyHex:    hex.EncodeToString(p.bundle.K5),
		SearchKeyHex: hex.EncodeToString(p.bundle.K6),
	}, nil
}

type searchMatch struct {
	name    string
	sidecar Sidecar
	master  []byte
	bundle  keys.Bundle
}

// Search scans dir for sidecars, derives keys for each, skips those
// whose password does not match, and reports which of the remaining
// files' token sets contain each query (spec.md §4.F). It fails with
// *NoMatchError if no sidecar in dir matched the password.
func Search(dir string, queries []string, password string) (SearchResult, error) {
	if password == "" {
		return SearchResult{}, ErrEmptyPassword
	}

	names, err := listSidecars(dir)
	if err != nil {
		return SearchResult{}, err
	}

	var matched []searchMatch
	var skipped []SkippedFile
	for _, name := range names {
		sc, err := readSidecar(dir, name)
		if err != nil {
			skipped = append(skipped, SkippedFile{Filename: name, Reason: err.Error()})
			continue
		}

		salt, err := hex.DecodeString(sc.Salt)
		if err != nil {
			skipped = append(skipped, SkippedFile{Filename: name, Reason: "malformed salt in sidecar"})
			continue
		}

		master := keys.Derive(password, salt)
		bundle, err := keys.Schedule(master)
		if err != nil {
			keys.Zero(master)
			skipped = append(skipped, SkippedFile{Filename: name, Reason: err.Error()})
			continue
		}

		if !mac.EqualHex(hex.EncodeToString(bundle.Validator), sc.Validator) {
			keys.Zero(master)
			zeroBundle(&bundle)
			skipped = append(skipped, SkippedFile{Filename: name, Reason: "password did not match"})
			continue
		}

		matched = append(matched, searchMatch{name: name, sidecar: sc, master: master, bundle: bundle})
	}

	if len(matched) == 0 {
		return SearchResult{Skipped: skipped}, &NoMatchError{}
	}

	hits := []SearchHit{}
	masterKeys := make(map[string]string, len(matched))
	for _, m := range matched {
		masterKeys[m.name] = hex.EncodeToString(m.master)

		terms := make(map[string]struct{}, len(m.sidecar.Terms))
		for _, t := range m.sidecar.Terms {
			terms[t] = struct{}{}
		}

		for _, q := range queries {
			if _, ok := terms[wordindex.Query(q, m.bundle.K6)]; ok {
				hits = append(hits, SearchHit{Filename: m.name, Query: q})
			}
		}

		keys.Zero(m.master)
		zeroBundle(&m.bundle)
	}

	return SearchResult{Hits: hits, MasterKeys: masterKeys, Skipped: skipped}, nil
}

func zeroBundle(b *keys.Bundle) {
	keys.Zero(b.Validator)
	keys.Zero(b.K1)
	keys.Zero(b.K2)
	keys.Zero(b.K3)
	keys.Zero(b.K4)
	keys.Zero(b.K5)
	keys.Zero(b.K6)
}
