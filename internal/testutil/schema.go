// Package testutil builds synthetic API set schema buffers for tests. The
// encoder here is written independently of internal/format so tests
// cross-check the decoder instead of reusing its layout.
package testutil

import (
	"encoding/binary"
	"sort"
	"strings"
	"unicode/utf16"
)

// Redirect is one redirection target. Importer is the optional importing
// module the redirection is scoped to.
type Redirect struct {
	Flags    uint32
	Importer string
	Target   string
}

// Entry is one virtual name. Alias is only encoded by V4. HashedLen is the
// number of code units of Name covered by the v6 hash; zero selects
// everything before the last '-'.
type Entry struct {
	Flags     uint32
	Name      string
	Alias     string
	HashedLen int
	Redirects []Redirect
}

// Schema describes a whole namespace.
type Schema struct {
	Flags      uint32
	HashFactor uint32
	Entries    []Entry
}

// DefaultHashFactor is the factor shipped in every known v6 schema.
const DefaultHashFactor = 0x1F

type encoder struct {
	b []byte
}

func (w *encoder) alloc(n int) int {
	off := len(w.b)
	w.b = append(w.b, make([]byte, n)...)
	return off
}

func (w *encoder) u16(off int, v uint16) { binary.LittleEndian.PutUint16(w.b[off:], v) }
func (w *encoder) u32(off int, v uint32) { binary.LittleEndian.PutUint32(w.b[off:], v) }

// str appends s as UTF-16LE and returns its offset and byte length.
func (w *encoder) str(s string) (uint32, uint32) {
	units := utf16.Encode([]rune(s))
	off := w.alloc(len(units) * 2)
	for i, u := range units {
		w.u16(off+i*2, u)
	}
	return uint32(off), uint32(len(units) * 2)
}

func (w *encoder) pad(min int) {
	if len(w.b) < min {
		w.alloc(min - len(w.b))
	}
}

// V2 encodes s as a version 2 namespace. Flags are not representable.
func V2(s Schema) []byte {
	w := &encoder{}
	w.alloc(8 + 12*len(s.Entries))
	w.u32(0, 2)
	w.u32(4, uint32(len(s.Entries)))
	for i, e := range s.Entries {
		rec := 8 + 12*i
		val := w.alloc(4 + 16*len(e.Redirects))
		w.u32(val, uint32(len(e.Redirects)))
		for j, r := range e.Redirects {
			red := val + 4 + 16*j
			no, nl := w.str(r.Importer)
			vo, vl := w.str(r.Target)
			w.u32(red, no)
			w.u16(red+4, uint16(nl))
			w.u32(red+8, vo)
			w.u16(red+12, uint16(vl))
		}
		no, nl := w.str(e.Name)
		w.u32(rec, no)
		w.u32(rec+4, nl)
		w.u32(rec+8, uint32(val))
	}
	w.pad(20)
	return w.b
}

// V4 encodes s as a version 4 namespace. Size is set to the final length.
func V4(s Schema) []byte {
	w := &encoder{}
	w.alloc(16 + 24*len(s.Entries))
	w.u32(0, 4)
	w.u32(8, s.Flags)
	w.u32(12, uint32(len(s.Entries)))
	for i, e := range s.Entries {
		rec := 16 + 24*i
		val := w.alloc(8 + 20*len(e.Redirects))
		w.u32(val+4, uint32(len(e.Redirects)))
		for j, r := range e.Redirects {
			red := val + 8 + 20*j
			no, nl := w.str(r.Importer)
			vo, vl := w.str(r.Target)
			w.u32(red, r.Flags)
			w.u32(red+4, no)
			w.u32(red+8, nl)
			w.u32(red+12, vo)
			w.u32(red+16, vl)
		}
		no, nl := w.str(e.Name)
		ao, al := w.str(e.Alias)
		w.u32(rec, e.Flags)
		w.u32(rec+4, no)
		w.u32(rec+8, nl)
		w.u32(rec+12, ao)
		w.u32(rec+16, al)
		w.u32(rec+20, uint32(val))
	}
	w.pad(40)
	w.u32(4, uint32(len(w.b)))
	return w.b
}

// V6 encodes s as a version 6 namespace with a hash table sorted by hash.
// A zero HashFactor selects DefaultHashFactor.
func V6(s Schema) []byte {
	factor := s.HashFactor
	if factor == 0 {
		factor = DefaultHashFactor
	}
	n := len(s.Entries)
	w := &encoder{}
	w.alloc(28)
	entries := w.alloc(24 * n)
	hashes := w.alloc(8 * n)
	w.u32(0, 6)
	w.u32(8, s.Flags)
	w.u32(12, uint32(n))
	w.u32(16, uint32(entries))
	w.u32(20, uint32(hashes))
	w.u32(24, factor)

	type pair struct{ hash, index uint32 }
	pairs := make([]pair, 0, n)
	for i, e := range s.Entries {
		rec := entries + 24*i
		vals := w.alloc(20 * len(e.Redirects))
		for j, r := range e.Redirects {
			red := vals + 20*j
			no, nl := w.str(r.Importer)
			vo, vl := w.str(r.Target)
			w.u32(red, r.Flags)
			w.u32(red+4, no)
			w.u32(red+8, nl)
			w.u32(red+12, vo)
			w.u32(red+16, vl)
		}
		hashed := HashedUnits(e)
		no, nl := w.str(e.Name)
		w.u32(rec, e.Flags)
		w.u32(rec+4, no)
		w.u32(rec+8, nl)
		w.u32(rec+12, uint32(hashed*2))
		w.u32(rec+16, uint32(vals))
		w.u32(rec+20, uint32(len(e.Redirects)))
		pairs = append(pairs, pair{Fold(e.Name, hashed, factor), uint32(i)})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].hash < pairs[j].hash })
	for i, p := range pairs {
		w.u32(hashes+8*i, p.hash)
		w.u32(hashes+8*i+4, p.index)
	}
	w.u32(4, uint32(len(w.b)))
	return w.b
}

// HashedUnits returns how many code units of e.Name the v6 hash covers.
func HashedUnits(e Entry) int {
	units := len(utf16.Encode([]rune(e.Name)))
	if e.HashedLen > 0 && e.HashedLen <= units {
		return e.HashedLen
	}
	if i := strings.LastIndexByte(e.Name, '-'); i >= 0 {
		return len(utf16.Encode([]rune(e.Name[:i])))
	}
	return units
}

// Fold computes hash = hash*factor + unit over the first n code units of s.
func Fold(s string, n int, factor uint32) uint32 {
	var h uint32
	for _, u := range utf16.Encode([]rune(s))[:n] {
		h = h*factor + uint32(u)
	}
	return h
}

// Put32 overwrites a little-endian ULONG in b, for corrupting fixtures.
func Put32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:], v)
}
