package apiset_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/apisetkit/internal/testutil"
	"github.com/joshuapare/apisetkit/pkg/apiset"
)

const (
	flagSealed = uint32(apiset.FlagSealed)
	flagExt    = uint32(apiset.FlagExt)
)

func coreSchema() testutil.Schema {
	return testutil.Schema{
		Flags: flagSealed,
		Entries: []testutil.Entry{
			{
				Flags: flagSealed,
				Name:  "api-ms-win-core-file-l1-2-0",
				Alias: "file-alias",
				Redirects: []testutil.Redirect{
					{Target: "kernel32.dll"},
					{Flags: flagExt, Importer: "kernel32.dll", Target: "kernelbase.dll"},
				},
			},
			{
				Name: "ext-ms-win-gdi-draw-l1-1-0",
				Redirects: []testutil.Redirect{
					{Target: ""},
					{Importer: "user32.dll", Target: ""},
				},
			},
		},
	}
}

func TestRenderV2(t *testing.T) {
	out, err := apiset.Render(testutil.V2(coreSchema()))
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Version: 2",
		"Count: 2",
		"0|api-ms-win-core-file-l1-2-0 -> [kernel32.dll,kernelbase.dll]",
		"1|ext-ms-win-gdi-draw-l1-1-0 -> []",
		"",
	}, "\n"), out)
}

func TestRenderV4Scenario(t *testing.T) {
	data := testutil.V4(testutil.Schema{
		Flags: flagSealed,
		Entries: []testutil.Entry{{
			Name:      "a.dll",
			Redirects: []testutil.Redirect{{Flags: flagExt, Target: "b.dll"}},
		}},
	})
	out, err := apiset.Render(data)
	require.NoError(t, err)
	want := fmt.Sprintf("Version: 4\nSize: %d\nFlags: (sealed)\nCount: 1\n0|a.dll -> [b.dll(ext)]\n", len(data))
	assert.Equal(t, want, out)
}

func TestRenderV4Flags(t *testing.T) {
	data := testutil.V4(coreSchema())
	out, err := apiset.Render(data)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "0|api-ms-win-core-file-l1-2-0(sealed) -> [kernel32.dll,kernelbase.dll(ext)]", lines[4])
	assert.Equal(t, "1|ext-ms-win-gdi-draw-l1-1-0 -> []", lines[5])
}

func TestRenderV6(t *testing.T) {
	s := coreSchema()
	s.HashFactor = 31
	data := testutil.V6(s)
	out, err := apiset.Render(data)
	require.NoError(t, err)

	h0 := testutil.Fold("api-ms-win-core-file-l1-2-0", len("api-ms-win-core-file-l1-2"), 31)
	h1 := testutil.Fold("ext-ms-win-gdi-draw-l1-1-0", len("ext-ms-win-gdi-draw-l1-1"), 31)
	lines := []string{
		"Version: 6",
		fmt.Sprintf("Size: %d", len(data)),
		"Flags: (sealed)",
		"Count: 2",
		"HashFactor: 31",
		fmt.Sprintf("0|0x%08X|api-ms-win-core-file-l1-2{-0}(sealed) -> [kernel32.dll,kernelbase.dll(ext)]", h0),
		fmt.Sprintf("1|0x%08X|ext-ms-win-gdi-draw-l1-1{-0} -> []", h1),
	}
	if h0 <= h1 {
		lines = append(lines, fmt.Sprintf("0x%08X -> 0", h0), fmt.Sprintf("0x%08X -> 1", h1))
	} else {
		lines = append(lines, fmt.Sprintf("0x%08X -> 1", h1), fmt.Sprintf("0x%08X -> 0", h0))
	}
	assert.Equal(t, strings.Join(lines, "\n")+"\n", out)
}

func TestRenderV6HashScenario(t *testing.T) {
	data := testutil.V6(testutil.Schema{
		HashFactor: 31,
		Entries:    []testutil.Entry{{Name: "api-x", HashedLen: 4}},
	})
	ns, err := apiset.Decode(data)
	require.NoError(t, err)
	want := uint32(((('a'*31+'p')*31+'i')*31 + '-'))
	assert.Equal(t, want, ns.Entries[0].Hash)
	assert.Equal(t, "api-", ns.Entries[0].HashedName().String())
	assert.Equal(t, "x", ns.Entries[0].Suffix().String())
	assert.Equal(t, want, ns.Hashes[0].Hash)
}

func TestRenderIdempotent(t *testing.T) {
	for name, data := range map[string][]byte{
		"v2": testutil.V2(coreSchema()),
		"v4": testutil.V4(coreSchema()),
		"v6": testutil.V6(coreSchema()),
	} {
		t.Run(name, func(t *testing.T) {
			first, err := apiset.Render(data)
			require.NoError(t, err)
			second, err := apiset.Render(data)
			require.NoError(t, err)
			assert.Equal(t, first, second)
			assert.Contains(t, first, "\nCount: 2\n")
		})
	}
}

func TestRenderCountMatchesEntries(t *testing.T) {
	var entries []testutil.Entry
	for i := range 50 {
		entries = append(entries, testutil.Entry{
			Name:      fmt.Sprintf("api-ms-win-test-%02d-l1-1-0", i),
			Redirects: []testutil.Redirect{{Target: "host.dll"}},
		})
	}
	data := testutil.V6(testutil.Schema{Entries: entries})
	out, err := apiset.Render(data)
	require.NoError(t, err)
	assert.Contains(t, out, "\nCount: 50\n")
	assert.Equal(t, 50, strings.Count(out, "-> [host.dll]"))
	// 5 header lines, 50 entry lines, 50 hash lines.
	assert.Equal(t, 105, strings.Count(out, "\n"))
}

func TestFlagsFormat(t *testing.T) {
	tests := []struct {
		flags apiset.Flags
		hide  string
		show  string
	}{
		{0, "", "()"},
		{apiset.FlagSealed, "(sealed)", "(sealed)"},
		{apiset.FlagExt, "(ext)", "(ext)"},
		{apiset.FlagSealed | apiset.FlagExt, "(sealed,ext)", "(sealed,ext)"},
		{0x10, "()", "()"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.hide, tt.flags.Format(true), "hidden %#x", uint32(tt.flags))
		assert.Equal(t, tt.show, tt.flags.Format(false), "shown %#x", uint32(tt.flags))
		assert.Equal(t, tt.show, tt.flags.String())
	}
}

func TestDecodeTruncatedByOneByte(t *testing.T) {
	cases := map[string][]byte{
		"v2": testutil.V2(testutil.Schema{}),
		"v4": testutil.V4(testutil.Schema{}),
		"v6": testutil.V6(testutil.Schema{}),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := apiset.Decode(data)
			require.NoError(t, err)
			out, err := apiset.Render(data[:len(data)-1])
			require.ErrorIs(t, err, apiset.ErrTruncated)
			assert.Empty(t, out)
		})
	}

	_, err := apiset.Decode([]byte{6, 0, 0})
	require.ErrorIs(t, err, apiset.ErrTruncated)
}

func TestDecodeDeclaredSizeTooLarge(t *testing.T) {
	data := testutil.V6(coreSchema())
	testutil.Put32(data, 4, uint32(len(data))+1)
	_, err := apiset.Decode(data)
	require.ErrorIs(t, err, apiset.ErrTruncated)
}

func TestDecodeUnknownVersion(t *testing.T) {
	data := testutil.V4(coreSchema())
	testutil.Put32(data, 0, 3)
	_, err := apiset.Decode(data)
	require.ErrorIs(t, err, apiset.ErrUnknownVersion)
	assert.Contains(t, err.Error(), "3")
}

func TestDecodeOutOfBounds(t *testing.T) {
	tests := []struct {
		name    string
		build   func() []byte
		corrupt func(b []byte)
		what    string
	}{
		{
			name:    "v2 name",
			build:   func() []byte { return testutil.V2(coreSchema()) },
			corrupt: func(b []byte) { testutil.Put32(b, 8, uint32(len(b))) },
			what:    "name",
		},
		{
			name:    "v2 value",
			build:   func() []byte { return testutil.V2(coreSchema()) },
			corrupt: func(b []byte) { testutil.Put32(b, 16, uint32(len(b))) },
			what:    "v2 value",
		},
		{
			name:    "v2 entry table",
			build:   func() []byte { return testutil.V2(coreSchema()) },
			corrupt: func(b []byte) { testutil.Put32(b, 4, 1000) },
			what:    "v2 entry table",
		},
		{
			name:    "v4 alias",
			build:   func() []byte { return testutil.V4(coreSchema()) },
			corrupt: func(b []byte) { testutil.Put32(b, 16+12, uint32(len(b)-2)) },
			what:    "alias",
		},
		{
			name:    "v4 redirection count",
			build:   func() []byte { return testutil.V4(coreSchema()) },
			corrupt: func(b []byte) { val := int(le32(b, 16+20)); testutil.Put32(b, val+4, 0x01000000) },
			what:    "v4 redirection table",
		},
		{
			name:    "v6 entry table",
			build:   func() []byte { return testutil.V6(coreSchema()) },
			corrupt: func(b []byte) { testutil.Put32(b, 16, uint32(len(b)-8)) },
			what:    "v6 entry table",
		},
		{
			name:    "v6 hash table",
			build:   func() []byte { return testutil.V6(coreSchema()) },
			corrupt: func(b []byte) { testutil.Put32(b, 20, 0xFFFFFFF0) },
			what:    "v6 hash table",
		},
		{
			name:    "v6 target",
			build:   func() []byte { return testutil.V6(coreSchema()) },
			corrupt: func(b []byte) { val := int(le32(b, 28+16)); testutil.Put32(b, val+12, uint32(len(b))) },
			what:    "target",
		},
		{
			name:    "v6 hashed length",
			build:   func() []byte { return testutil.V6(coreSchema()) },
			corrupt: func(b []byte) { testutil.Put32(b, 28+12, 0x1000) },
			what:    "v6 hashed name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.build()
			tt.corrupt(data)
			out, err := apiset.Render(data)
			require.ErrorIs(t, err, apiset.ErrOutOfBounds)
			assert.Empty(t, out)

			var re *apiset.RangeError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.what, re.What)
			assert.Equal(t, len(data), re.BufLen)
		})
	}
}

func le32(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}
