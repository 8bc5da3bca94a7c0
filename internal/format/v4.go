package format

import "fmt"

// HeaderV4 models API_SET_NAMESPACE_V4.
type HeaderV4 struct {
	Version uint32
	Size    uint32
	Flags   uint32
	Count   uint32
}

// EntryV4 models API_SET_NAMESPACE_ENTRY_V4.
type EntryV4 struct {
	Flags       uint32
	NameOffset  uint32
	NameLength  uint32
	AliasOffset uint32
	AliasLength uint32
	DataOffset  uint32
}

// ValueV4 models the API_SET_VALUE_ENTRY_V4 header plus its validated
// redirection table.
type ValueV4 struct {
	Flags        uint32
	Count        uint32
	Redirections []byte
}

// RedirectionV4 models API_SET_VALUE_ENTRY_REDIRECTION_V4.
type RedirectionV4 struct {
	Flags       uint32
	NameOffset  uint32
	NameLength  uint32
	ValueOffset uint32
	ValueLength uint32
}

// DecodeHeaderV4 validates the minimum v4 size and the declared Size, then
// decodes the header.
func DecodeHeaderV4(b []byte) (HeaderV4, error) {
	if len(b) < NSV4MinSize {
		return HeaderV4{}, fmt.Errorf("v4 header: %w (have %d, need %d)", ErrTruncated, len(b), NSV4MinSize)
	}
	h := HeaderV4{
		Version: ReadU32(b, NSV4VersionOffset),
		Size:    ReadU32(b, NSV4SizeOffset),
		Flags:   ReadU32(b, NSV4FlagsOffset),
		Count:   ReadU32(b, NSV4CountOffset),
	}
	if uint64(len(b)) < uint64(h.Size) {
		return HeaderV4{}, fmt.Errorf("v4 header: %w (have %d, declared size %d)", ErrTruncated, len(b), h.Size)
	}
	return h, nil
}

// EntryTable returns the validated inline entry array.
func (h HeaderV4) EntryTable(b []byte) ([]byte, error) {
	return Table(b, "v4 entry table", NSV4ArrayOffset, h.Count, EntryV4Size)
}

// DecodeEntryV4 decodes one record of the entry table.
func DecodeEntryV4(rec []byte) EntryV4 {
	return EntryV4{
		Flags:       ReadU32(rec, EntryV4FlagsOffset),
		NameOffset:  ReadU32(rec, EntryV4NameOffset),
		NameLength:  ReadU32(rec, EntryV4NameLength),
		AliasOffset: ReadU32(rec, EntryV4AliasOffset),
		AliasLength: ReadU32(rec, EntryV4AliasLength),
		DataOffset:  ReadU32(rec, EntryV4DataOffset),
	}
}

// DecodeValueV4 resolves the value record at off and validates its
// redirection table.
func DecodeValueV4(b []byte, off uint32) (ValueV4, error) {
	hdr, ok := Slice(b, int(off), ValueV4HeaderSize)
	if !ok {
		return ValueV4{}, rangeErr("v4 value", int64(off), ValueV4HeaderSize, len(b))
	}
	v := ValueV4{
		Flags: ReadU32(hdr, ValueV4FlagsOffset),
		Count: ReadU32(hdr, ValueV4CountOffset),
	}
	tbl, err := Table(b, "v4 redirection table", off+ValueV4ArrayOffset, v.Count, RedirectionV4Size)
	if err != nil {
		return ValueV4{}, err
	}
	v.Redirections = tbl
	return v, nil
}

// DecodeRedirectionV4 decodes one record of a redirection table.
func DecodeRedirectionV4(rec []byte) RedirectionV4 {
	return RedirectionV4{
		Flags:       ReadU32(rec, RedirV4FlagsOffset),
		NameOffset:  ReadU32(rec, RedirV4NameOffset),
		NameLength:  ReadU32(rec, RedirV4NameLength),
		ValueOffset: ReadU32(rec, RedirV4ValueOffset),
		ValueLength: ReadU32(rec, RedirV4ValueLength),
	}
}
