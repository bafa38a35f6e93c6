// Package safefile implements the temp-file + atomic-rename commit used
// by all codecs.
//
// Replace writes to a temporary file in the target's directory (so the
// rename stays on one filesystem), fsyncs it, then renames it over the
// target. On any failure the temporary file is removed and the target
// retains its prior content.
package safefile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Replace atomically replaces path with data.
//
// The target file either retains its prior content or is fully replaced;
// it is never observable in a partially written state. The replacement
// preserves the original file's permission bits when the file exists.
func Replace(path string, data []byte) error {
	dir := filepath.Dir(path)

	// Carry over the original mode; new files get a conventional default.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".rolltag-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Cleanup on every failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	// fsync before rename so a crash cannot publish an empty file.
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp to target: %w", err)
	}
	success = true

	return nil
}
