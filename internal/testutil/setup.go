package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteSchema writes data to a file in a per-test temporary directory and
// returns its path.
//
// Example:
//
//	path := testutil.WriteSchema(t, "apisetschema.bin", testutil.V6(schema))
//	f, err := apiset.Open(path)
func WriteSchema(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write schema %s: %v", path, err)
	}
	return path
}
