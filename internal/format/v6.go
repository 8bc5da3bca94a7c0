package format

import "fmt"

// HeaderV6 models API_SET_NAMESPACE_V6.
type HeaderV6 struct {
	Version     uint32
	Size        uint32
	Flags       uint32
	Count       uint32
	EntryOffset uint32
	HashOffset  uint32
	HashFactor  uint32
}

// EntryV6 models API_SET_NAMESPACE_ENTRY_V6. The first HashedLength bytes of
// the name are covered by the hash; the remainder is the unhashed suffix.
type EntryV6 struct {
	Flags        uint32
	NameOffset   uint32
	NameLength   uint32
	HashedLength uint32
	ValueOffset  uint32
	ValueCount   uint32
}

// RedirectionV6 models API_SET_VALUE_ENTRY_V6.
type RedirectionV6 struct {
	Flags       uint32
	NameOffset  uint32
	NameLength  uint32
	ValueOffset uint32
	ValueLength uint32
}

// HashEntryV6 models API_SET_HASH_ENTRY_V6.
type HashEntryV6 struct {
	Hash  uint32
	Index uint32
}

// DecodeHeaderV6 validates the minimum v6 size and the declared Size, then
// decodes the header.
func DecodeHeaderV6(b []byte) (HeaderV6, error) {
	if len(b) < NSV6MinSize {
		return HeaderV6{}, fmt.Errorf("v6 header: %w (have %d, need %d)", ErrTruncated, len(b), NSV6MinSize)
	}
	h := HeaderV6{
		Version:     ReadU32(b, NSV6VersionOffset),
		Size:        ReadU32(b, NSV6SizeOffset),
		Flags:       ReadU32(b, NSV6FlagsOffset),
		Count:       ReadU32(b, NSV6CountOffset),
		EntryOffset: ReadU32(b, NSV6EntryOffset),
		HashOffset:  ReadU32(b, NSV6HashOffset),
		HashFactor:  ReadU32(b, NSV6HashFactorOffset),
	}
	if uint64(len(b)) < uint64(h.Size) {
		return HeaderV6{}, fmt.Errorf("v6 header: %w (have %d, declared size %d)", ErrTruncated, len(b), h.Size)
	}
	return h, nil
}

// EntryTable returns the validated entry array located at EntryOffset.
func (h HeaderV6) EntryTable(b []byte) ([]byte, error) {
	return Table(b, "v6 entry table", h.EntryOffset, h.Count, EntryV6Size)
}

// HashTable returns the validated hash array located at HashOffset. It holds
// Count records, ordered by ascending hash.
func (h HeaderV6) HashTable(b []byte) ([]byte, error) {
	return Table(b, "v6 hash table", h.HashOffset, h.Count, HashEntryV6Size)
}

// DecodeEntryV6 decodes one record of the entry table.
func DecodeEntryV6(rec []byte) EntryV6 {
	return EntryV6{
		Flags:        ReadU32(rec, EntryV6FlagsOffset),
		NameOffset:   ReadU32(rec, EntryV6NameOffset),
		NameLength:   ReadU32(rec, EntryV6NameLength),
		HashedLength: ReadU32(rec, EntryV6HashedLength),
		ValueOffset:  ReadU32(rec, EntryV6ValueOffset),
		ValueCount:   ReadU32(rec, EntryV6ValueCount),
	}
}

// ValueTable returns the entry's validated redirection table. v6 has no value
// header; the count lives on the entry.
func (e EntryV6) ValueTable(b []byte) ([]byte, error) {
	return Table(b, "v6 value table", e.ValueOffset, e.ValueCount, RedirectionV6Size)
}

// SplitName resolves the hashed prefix and unhashed suffix of the entry
// name. The prefix holds HashedLength/2 units from NameOffset; the suffix
// starts at byte HashedLength and holds (NameLength-HashedLength)/2 units,
// so an odd HashedLength shifts the suffix by one byte. HashedLength larger
// than NameLength is reported as out of bounds.
func (e EntryV6) SplitName(b []byte) (hashed, suffix Text, err error) {
	if e.HashedLength > e.NameLength {
		return nil, nil, rangeErr("v6 hashed name", int64(e.NameOffset), int64(e.HashedLength), len(b))
	}
	if e.NameLength == 0 {
		return Text{}, Text{}, nil
	}
	raw, ok := Slice(b, int(e.NameOffset), int(e.NameLength))
	if !ok {
		return nil, nil, rangeErr("v6 name", int64(e.NameOffset), int64(e.NameLength), len(b))
	}
	h := int(e.HashedLength)
	rest := (len(raw) - h) &^ 1
	return Text(raw[: h&^1 : h&^1]), Text(raw[h : h+rest : h+rest]), nil
}

// DecodeRedirectionV6 decodes one record of a value table.
func DecodeRedirectionV6(rec []byte) RedirectionV6 {
	return RedirectionV6{
		Flags:       ReadU32(rec, RedirV6FlagsOffset),
		NameOffset:  ReadU32(rec, RedirV6NameOffset),
		NameLength:  ReadU32(rec, RedirV6NameLength),
		ValueOffset: ReadU32(rec, RedirV6ValueOffset),
		ValueLength: ReadU32(rec, RedirV6ValueLength),
	}
}

// DecodeHashEntryV6 decodes one record of the hash table.
func DecodeHashEntryV6(rec []byte) HashEntryV6 {
	return HashEntryV6{
		Hash:  ReadU32(rec, HashV6HashOffset),
		Index: ReadU32(rec, HashV6IndexOffset),
	}
}
