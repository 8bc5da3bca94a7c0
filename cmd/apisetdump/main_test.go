package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/apisetkit/internal/testutil"
	"github.com/joshuapare/apisetkit/pkg/apiset"
)

func testSchema() testutil.Schema {
	return testutil.Schema{
		Flags: uint32(apiset.FlagSealed),
		Entries: []testutil.Entry{
			{
				Name: "api-ms-win-core-file-l1-2-0",
				Redirects: []testutil.Redirect{
					{Target: "kernel32.dll"},
					{Importer: "kernel32.dll", Target: "kernelbase.dll"},
				},
			},
			{Name: "api-ms-win-core-heap-l1-1-0", Redirects: []testutil.Redirect{{Target: "kernelbase.dll"}}},
		},
	}
}

// run resets global flag state and executes the CLI.
func run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	verbose, jsonOut, utf16 = false, false, false
	outputPath = ""
	lookupImporter = ""
	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRootDumpsSchema(t *testing.T) {
	data := testutil.V6(testSchema())
	path := testutil.WriteSchema(t, "apisetschema.bin", data)
	want, err := apiset.Render(data)
	require.NoError(t, err)

	for _, args := range [][]string{{path}, {"dump", path}} {
		stdout, stderr, code := run(t, args...)
		assert.Equal(t, 0, code, stderr)
		assert.Empty(t, stderr)
		assert.Equal(t, want, stdout)
	}
}

func TestDumpFailures(t *testing.T) {
	bad := testutil.V4(testSchema())
	testutil.Put32(bad, 0, 3)
	badPath := testutil.WriteSchema(t, "v3.bin", bad)
	truncated := testutil.V2(testSchema())
	truncPath := testutil.WriteSchema(t, "trunc.bin", truncated[:19])

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no arguments", nil, "expected 1 argument(s), got 0"},
		{"too many arguments", []string{"a", "b"}, "expected 1 argument(s), got 2"},
		{"missing file", []string{"/nonexistent/apisetschema.bin"}, "no such file"},
		{"unknown version", []string{badPath}, "unknown api set version"},
		{"truncated", []string{truncPath}, "truncated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := run(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout, "no partial output on failure")
			assert.True(t, strings.HasPrefix(stderr, "ERROR: "), stderr)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestDumpJSON(t *testing.T) {
	path := testutil.WriteSchema(t, "apisetschema.bin", testutil.V4(testSchema()))
	stdout, stderr, code := run(t, "dump", path, "--json")
	require.Equal(t, 0, code, stderr)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.EqualValues(t, 4, doc["version"])
	assert.Len(t, doc["entries"], 2)
}

func TestDumpUTF16(t *testing.T) {
	path := testutil.WriteSchema(t, "apisetschema.bin", testutil.V2(testSchema()))
	stdout, _, code := run(t, path, "--utf16")
	require.Equal(t, 0, code)
	raw := []byte(stdout)
	require.True(t, len(raw) > 4)
	assert.Equal(t, []byte{'V', 0, 'e', 0}, raw[:4])
	assert.Equal(t, 0, len(raw)%2)
}

func TestDumpVerboseLogs(t *testing.T) {
	path := testutil.WriteSchema(t, "apisetschema.bin", testutil.V6(testSchema()))
	stdout, stderr, code := run(t, "-v", path)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Count: 2")
	assert.Contains(t, stderr, "decoded api set namespace")
	assert.Contains(t, stderr, "opening schema")
}

func TestLookupCommand(t *testing.T) {
	path := testutil.WriteSchema(t, "apisetschema.bin", testutil.V6(testSchema()))

	stdout, stderr, code := run(t, "lookup", path, "API-MS-WIN-CORE-FILE-L1-2-0.dll")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "API-MS-WIN-CORE-FILE-L1-2-0.dll -> kernel32.dll\n", stdout)

	stdout, stderr, code = run(t, "lookup", path, "api-ms-win-core-file-l1-2-0", "--importer", "kernel32.dll")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "api-ms-win-core-file-l1-2-0 -> kernelbase.dll\n", stdout)

	stdout, _, code = run(t, "lookup", path, "api-ms-win-core-heap-l1-1-0", "--json")
	require.Equal(t, 0, code)
	var res lookupResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, "kernelbase.dll", res.Target)

	_, stderr, code = run(t, "lookup", path, "api-ms-win-core-nothing-l1-1-0")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not found")

	_, stderr, code = run(t, "lookup", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "expected 2 argument(s), got 1")
}

func TestInfoCommand(t *testing.T) {
	data := testutil.V6(testSchema())
	path := testutil.WriteSchema(t, "apisetschema.bin", data)

	stdout, stderr, code := run(t, "info", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Digest: sha256:")
	assert.Contains(t, stdout, "Version: 6\n")
	assert.Contains(t, stdout, "Flags: (sealed)\n")
	assert.Contains(t, stdout, "HashFactor: 31\n")
	assert.Contains(t, stdout, "Redirections: 3\n")

	stdout, _, code = run(t, "info", path, "--json")
	require.Equal(t, 0, code)
	var res infoResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, len(data), res.Bytes)
	require.NoError(t, res.Digest.Validate())
	assert.Equal(t, uint32(2), res.Count)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, code := run(t, "version")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "apisetdump dev\n"))
}

func TestDumpToOutputFile(t *testing.T) {
	data := testutil.V4(testSchema())
	path := testutil.WriteSchema(t, "apisetschema.bin", data)
	out := filepath.Join(t.TempDir(), "dump.txt")

	stdout, stderr, code := run(t, path, "-o", out)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	want, err := apiset.Render(data)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))

	bad := testutil.V4(testSchema())
	testutil.Put32(bad, 0, 7)
	_, _, code = run(t, testutil.WriteSchema(t, "bad.bin", bad), "-o", out)
	assert.Equal(t, 1, code)
	got, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, want, string(got), "failed run must not replace the output file")
}
