package apiset

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joshuapare/apisetkit/internal/format"
)

// Decode interprets data according to its version tag and validates every
// reference the renderers follow. The returned Namespace borrows data.
func Decode(data []byte) (*Namespace, error) {
	version, err := format.PeekVersion(data)
	if err != nil {
		return nil, fmt.Errorf("apiset: version tag: %w (have %d bytes)", err, len(data))
	}

	var ns *Namespace
	switch version {
	case format.Version2:
		ns, err = decodeV2(data)
	case format.Version4:
		ns, err = decodeV4(data)
	case format.Version6:
		ns, err = decodeV6(data)
	default:
		return nil, fmt.Errorf("apiset: %w: %d", ErrUnknownVersion, version)
	}
	if err != nil {
		return nil, fmt.Errorf("apiset: %w", err)
	}

	Logger().Debug("decoded api set namespace",
		zap.Uint32("version", ns.Version),
		zap.Uint32("size", ns.Size),
		zap.Int("entries", len(ns.Entries)),
		zap.Int("bytes", len(data)),
	)
	return ns, nil
}

func decodeV2(b []byte) (*Namespace, error) {
	h, err := format.DecodeHeaderV2(b)
	if err != nil {
		return nil, err
	}
	tbl, err := h.EntryTable(b)
	if err != nil {
		return nil, err
	}

	ns := &Namespace{
		Version: h.Version,
		Count:   h.Count,
		Entries: make([]Entry, format.Records(tbl, format.EntryV2Size)),
	}
	values := newTableCache(b, format.Version2)
	for i := range ns.Entries {
		rec := format.DecodeEntryV2(format.Record(tbl, i, format.EntryV2Size))
		e := &ns.Entries[i]
		e.Index = i
		if e.Name, err = format.ResolveText(b, "name", rec.NameOffset, rec.NameLength); err != nil {
			return nil, fmt.Errorf("v2 entry %d: %w", i, err)
		}
		e.redirs, err = values.table(tableKey{off: rec.DataOffset}, func() ([]byte, error) {
			val, err := format.DecodeValueV2(b, rec.DataOffset)
			return val.Redirections, err
		})
		if err != nil {
			return nil, fmt.Errorf("v2 entry %d: %w", i, err)
		}
	}
	return ns, nil
}

func decodeV4(b []byte) (*Namespace, error) {
	h, err := format.DecodeHeaderV4(b)
	if err != nil {
		return nil, err
	}
	tbl, err := h.EntryTable(b)
	if err != nil {
		return nil, err
	}

	ns := &Namespace{
		Version: h.Version,
		Size:    h.Size,
		Flags:   Flags(h.Flags),
		Count:   h.Count,
		Entries: make([]Entry, format.Records(tbl, format.EntryV4Size)),
	}
	values := newTableCache(b, format.Version4)
	for i := range ns.Entries {
		rec := format.DecodeEntryV4(format.Record(tbl, i, format.EntryV4Size))
		e := &ns.Entries[i]
		e.Index = i
		e.Flags = Flags(rec.Flags)
		if e.Name, err = format.ResolveText(b, "name", rec.NameOffset, rec.NameLength); err != nil {
			return nil, fmt.Errorf("v4 entry %d: %w", i, err)
		}
		if e.Alias, err = format.ResolveText(b, "alias", rec.AliasOffset, rec.AliasLength); err != nil {
			return nil, fmt.Errorf("v4 entry %d: %w", i, err)
		}
		e.redirs, err = values.table(tableKey{off: rec.DataOffset}, func() ([]byte, error) {
			val, err := format.DecodeValueV4(b, rec.DataOffset)
			return val.Redirections, err
		})
		if err != nil {
			return nil, fmt.Errorf("v4 entry %d: %w", i, err)
		}
	}
	return ns, nil
}

func decodeV6(b []byte) (*Namespace, error) {
	h, err := format.DecodeHeaderV6(b)
	if err != nil {
		return nil, err
	}
	entries, err := h.EntryTable(b)
	if err != nil {
		return nil, err
	}
	hashes, err := h.HashTable(b)
	if err != nil {
		return nil, err
	}

	ns := &Namespace{
		Version:    h.Version,
		Size:       h.Size,
		Flags:      Flags(h.Flags),
		Count:      h.Count,
		HashFactor: h.HashFactor,
		Entries:    make([]Entry, format.Records(entries, format.EntryV6Size)),
		Hashes:     make([]HashEntry, format.Records(hashes, format.HashEntryV6Size)),
	}
	values := newTableCache(b, format.Version6)
	for i := range ns.Entries {
		rec := format.DecodeEntryV6(format.Record(entries, i, format.EntryV6Size))
		e := &ns.Entries[i]
		e.Index = i
		e.Flags = Flags(rec.Flags)
		e.HashedLength = rec.HashedLength
		e.hashed = true

		if e.hashedName, e.suffix, err = rec.SplitName(b); err != nil {
			return nil, fmt.Errorf("v6 entry %d: %w", i, err)
		}
		// SplitName validated the whole name range.
		e.Name, _ = format.ResolveText(b, "name", rec.NameOffset, rec.NameLength)
		e.Hash = format.Hash(e.hashedName, h.HashFactor)

		e.redirs, err = values.table(tableKey{off: rec.ValueOffset, count: rec.ValueCount}, func() ([]byte, error) {
			return rec.ValueTable(b)
		})
		if err != nil {
			return nil, fmt.Errorf("v6 entry %d: %w", i, err)
		}
	}
	for i := range ns.Hashes {
		he := format.DecodeHashEntryV6(format.Record(hashes, i, format.HashEntryV6Size))
		ns.Hashes[i] = HashEntry{Hash: he.Hash, Index: he.Index}
	}
	return ns, nil
}
