package envelope

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sidecarPrefix names the per-file JSON metadata blob the engine
// stores next to an encrypted file.
const sidecarPrefix = ".fenc-meta."

// Sidecar is the JSON metadata persisted alongside an encrypted file.
// Every field except terms is lowercase hex.
type Sidecar struct {
	Salt      string   `json:"salt"`
	Validator string   `json:"validator"`
	MAC       string   `json:"mac"`
	Terms     []string `json:"terms"`
}

// sidecarPath returns the sidecar path for a file named name in dir.
func sidecarPath(dir, name string) string {
	return filepath.Join(dir, sidecarPrefix+name)
}

// originalName strips the sidecar prefix from a sidecar's base name,
// returning the original filename it describes. ok is false if base
// does not carry the sidecar prefix.
func originalName(base string) (name string, ok bool) {
	if !strings.HasPrefix(base, sidecarPrefix) {
		return "", false
	}
	return strings.TrimPrefix(base, sidecarPrefix), true
}

// hasSidecar reports whether name (in dir) currently has a sidecar.
func hasSidecar(dir, name string) bool {
	_, err := os.Stat(sidecarPath(dir, name))
	return err == nil
}

// writeSidecar serializes s as JSON with default formatting and
// writes it to the sidecar path for name in dir.
func writeSidecar(dir, name string, s Sidecar) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("envelope: failed to marshal sidecar for %s: %w", name, err)
	}
	if err := os.WriteFile(sidecarPath(dir, name), data, 0o600); err != nil {
		return fmt.Errorf("envelope: failed to write sidecar for %s: %w", name, err)
	}
	return nil
}

// readSidecar loads and parses the sidecar for name in dir. Readers
// accept any JSON whitespace, which encoding/json does by default.
func readSidecar(dir, name string) (Sidecar, error) {
	data, err := os.ReadFile(sidecarPath(dir, name))
	if err != nil {
		return Sidecar{}, fmt.Errorf("envelope: failed to read sidecar for %s: %w", name, err)
	}
	var s Sidecar
	if err := json.Unmarshal(data, &s); err != nil {
		return Sidecar{}, fmt.Errorf("envelope: failed to parse sidecar for %s: %w", name, err)
	}
	return s, nil
}

// removeSidecar deletes the sidecar for name in dir.
func removeSidecar(dir, name string) error {
	if err := os.Remove(sidecarPath(dir, name)); err != nil {
		return fmt.Errorf("envelope: failed to remove sidecar for %s: %w", name, err)
	}
	return nil
}

// listSidecars returns the base filenames (the part after
// sidecarPrefix) of every sidecar present in dir.
func listSidecars(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("envelope: failed to list directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := originalName(e.Name()); ok {
			names = append(names, name)
		}
	}
	return names, nil
}
