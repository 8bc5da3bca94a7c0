// Package writer holds output sinks for rendered dumps.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// File replaces Path with the written bytes atomically: the dump is staged in
// a temp file in the same directory, synced, then renamed over Path. On error
// Path is left untouched.
//
// A replaced file keeps its permission bits; a new file gets DefaultMode.
type File struct {
	Path string
}

// DefaultMode is the permission of a newly created output file.
const DefaultMode os.FileMode = 0o644

func (w *File) mode() os.FileMode {
	if fi, err := os.Stat(w.Path); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return DefaultMode
}

// Write implements io.Writer. Each call replaces the whole file, so callers
// pass a fully rendered dump in one call.
func (w *File) Write(p []byte) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(w.Path), ".apisetdump-*")
	if err != nil {
		return 0, fmt.Errorf("writer: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(p); err != nil {
		return 0, fmt.Errorf("writer: write temp file: %w", err)
	}
	if err := tmp.Chmod(w.mode()); err != nil {
		return 0, fmt.Errorf("writer: chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("writer: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("writer: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, w.Path); err != nil {
		_ = os.Remove(tmpPath)
		committed = true
		return 0, fmt.Errorf("writer: rename temp file: %w", err)
	}
	committed = true
	return len(p), nil
}
