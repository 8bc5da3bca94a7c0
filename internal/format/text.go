package format

import (
	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Text is a UTF-16LE text range borrowed from a namespace buffer. It is never
// copied; String allocates the UTF-8 form on demand.
type Text []byte

// ResolveText returns the text range at [off, off+length) of b. The full byte
// length must lie inside b; an odd trailing byte is dropped from the view,
// matching length/2 code units. A zero length reads nothing and always
// succeeds, whatever the offset.
func ResolveText(b []byte, what string, off, length uint32) (Text, error) {
	if length == 0 {
		return Text{}, nil
	}
	s, ok := Slice(b, int(off), int(length))
	if !ok {
		return nil, rangeErr(what, int64(off), int64(length), len(b))
	}
	return Text(s[:len(s)&^1]), nil
}

// Len returns the number of UTF-16 code units.
func (t Text) Len() int { return len(t) / UTF16UnitSize }

// Unit returns the i-th UTF-16 code unit.
func (t Text) Unit(i int) uint16 { return ReadU16(t, i*UTF16UnitSize) }

// Slice returns the sub-range of code units [from, to).
func (t Text) Slice(from, to int) Text {
	return t[from*UTF16UnitSize : to*UTF16UnitSize]
}

// IsEmpty reports whether the range holds no code units.
func (t Text) IsEmpty() bool { return len(t) < UTF16UnitSize }

// String decodes the range to UTF-8. Unpaired surrogates become U+FFFD.
func (t Text) String() string {
	if len(t) == 0 {
		return ""
	}
	if s, ok := asciiFast(t); ok {
		return s
	}
	out, err := utf16le.NewDecoder().Bytes(t)
	if err != nil {
		return ""
	}
	return string(out)
}

// EqualFold reports whether t equals s under simple ASCII case folding,
// the comparison the loader applies to API set names.
func (t Text) EqualFold(s string) bool {
	if t.Len() != len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		u := t.Unit(i)
		if u >= asciiLimit || lowerASCII(byte(u)) != lowerASCII(s[i]) {
			return false
		}
	}
	return true
}

const asciiLimit = 0x80

func asciiFast(t Text) (string, bool) {
	out := make([]byte, t.Len())
	for i := range out {
		u := t.Unit(i)
		if u >= asciiLimit {
			return "", false
		}
		out[i] = byte(u)
	}
	return string(out), true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
