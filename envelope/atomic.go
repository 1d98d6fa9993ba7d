package envelope

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeAtomic writes data to path via a temp-file-plus-rename, rather
// than truncating path in place, so a crash mid-write cannot leave a
// half-written file behind. It does not make the broader
// encrypt/decrypt sequence crash-safe (spec.md §5) — the sidecar
// write or removal is still a separate step — but it closes the gap
// for the file write itself.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fenc-tmp-*")
	if err != nil {
		return fmt.Errorf("envelope: failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("envelope: failed to write temp file for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("envelope: failed to fsync temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("envelope: failed to close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("envelope: failed to replace %s: %w", path, err)
	}
	return nil
}
