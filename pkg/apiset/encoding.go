package apiset

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// OutputEncoding selects the byte encoding of rendered text.
type OutputEncoding string

const (
	// EncodingUTF8 writes text unchanged.
	EncodingUTF8 OutputEncoding = "utf-8"
	// EncodingUTF16LE writes little-endian UTF-16 without a BOM, the form the
	// schema stores its strings in.
	EncodingUTF16LE OutputEncoding = "utf-16le"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewEncodingWriter wraps w so that UTF-8 written to it reaches w in enc.
// Close flushes any buffered output; it does not close w.
func NewEncodingWriter(w io.Writer, enc OutputEncoding) (io.WriteCloser, error) {
	switch enc {
	case EncodingUTF8, "":
		return nopCloser{w}, nil
	case EncodingUTF16LE:
		e := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
		return transform.NewWriter(w, e), nil
	default:
		return nil, fmt.Errorf("apiset: unsupported output encoding %q", enc)
	}
}
