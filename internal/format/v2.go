package format

import "fmt"

// HeaderV2 models API_SET_NAMESPACE_V2.
type HeaderV2 struct {
	Version uint32
	Count   uint32
}

// EntryV2 models API_SET_NAMESPACE_ENTRY_V2.
type EntryV2 struct {
	NameOffset uint32
	NameLength uint32
	DataOffset uint32
}

// ValueV2 models the API_SET_VALUE_ENTRY_V2 header plus its validated
// redirection table.
type ValueV2 struct {
	Count        uint32
	Redirections []byte
}

// RedirectionV2 models API_SET_VALUE_ENTRY_REDIRECTION_V2. Lengths are USHORT
// in this version.
type RedirectionV2 struct {
	NameOffset  uint32
	NameLength  uint16
	ValueOffset uint32
	ValueLength uint16
}

// DecodeHeaderV2 validates the minimum v2 size and decodes the header.
func DecodeHeaderV2(b []byte) (HeaderV2, error) {
	if len(b) < NSV2MinSize {
		return HeaderV2{}, fmt.Errorf("v2 header: %w (have %d, need %d)", ErrTruncated, len(b), NSV2MinSize)
	}
	return HeaderV2{
		Version: ReadU32(b, NSV2VersionOffset),
		Count:   ReadU32(b, NSV2CountOffset),
	}, nil
}

// EntryTable returns the validated inline entry array.
func (h HeaderV2) EntryTable(b []byte) ([]byte, error) {
	return Table(b, "v2 entry table", NSV2ArrayOffset, h.Count, EntryV2Size)
}

// DecodeEntryV2 decodes one record of the entry table.
func DecodeEntryV2(rec []byte) EntryV2 {
	return EntryV2{
		NameOffset: ReadU32(rec, EntryV2NameOffset),
		NameLength: ReadU32(rec, EntryV2NameLength),
		DataOffset: ReadU32(rec, EntryV2DataOffset),
	}
}

// DecodeValueV2 resolves the value record at off and validates its
// redirection table before anything else reads it.
func DecodeValueV2(b []byte, off uint32) (ValueV2, error) {
	hdr, ok := Slice(b, int(off), ValueV2HeaderSize)
	if !ok {
		return ValueV2{}, rangeErr("v2 value", int64(off), ValueV2HeaderSize, len(b))
	}
	count := ReadU32(hdr, ValueV2CountOffset)
	tbl, err := Table(b, "v2 redirection table", off+ValueV2ArrayOffset, count, RedirectionV2Size)
	if err != nil {
		return ValueV2{}, err
	}
	return ValueV2{Count: count, Redirections: tbl}, nil
}

// DecodeRedirectionV2 decodes one record of a redirection table.
func DecodeRedirectionV2(rec []byte) RedirectionV2 {
	return RedirectionV2{
		NameOffset:  ReadU32(rec, RedirV2NameOffset),
		NameLength:  ReadU16(rec, RedirV2NameLength),
		ValueOffset: ReadU32(rec, RedirV2ValueOffset),
		ValueLength: ReadU16(rec, RedirV2ValueLength),
	}
}
