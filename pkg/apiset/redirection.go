package apiset

import (
	"fmt"
	"iter"

	"github.com/joshuapare/apisetkit/internal/format"
)

// Redirection is one candidate host for an entry. It is decoded on demand
// from the namespace buffer and borrows it.
type Redirection struct {
	Flags Flags // always zero for v2
	// Importer is the module this redirection is scoped to; empty for the
	// default redirection.
	Importer Text
	Target   Text

	targetLen uint32
}

// Present reports whether the redirection has a target. Redirections with a
// zero target length are skipped when rendering.
func (r Redirection) Present() bool { return r.targetLen != 0 }

// NumRedirections returns how many redirections the entry stores, including
// empty ones.
func (e *Entry) NumRedirections() int { return e.redirs.count() }

// Redirection decodes the j-th stored redirection. It panics if j is out of
// range.
func (e *Entry) Redirection(j int) Redirection { return e.redirs.at(j) }

// Redirections iterates over the stored redirections in table order.
//
// The returned views are only valid while the namespace buffer is alive.
func (e *Entry) Redirections() iter.Seq[Redirection] {
	return func(yield func(Redirection) bool) {
		for j := range e.redirs.count() {
			if !yield(e.redirs.at(j)) {
				return
			}
		}
	}
}

// redirTable is a redirection table validated by Decode. Several entries may
// share one table; it is never copied.
type redirTable struct {
	buf     []byte
	tbl     []byte
	version uint32
}

type rawRedirection struct {
	flags              uint32
	nameOff, nameLen   uint32
	valueOff, valueLen uint32
}

func (t redirTable) size() int {
	switch t.version {
	case format.Version2:
		return format.RedirectionV2Size
	case format.Version4:
		return format.RedirectionV4Size
	default:
		return format.RedirectionV6Size
	}
}

func (t redirTable) count() int { return format.Records(t.tbl, t.size()) }

func (t redirTable) raw(j int) rawRedirection {
	rec := format.Record(t.tbl, j, t.size())
	switch t.version {
	case format.Version2:
		r := format.DecodeRedirectionV2(rec)
		return rawRedirection{0, r.NameOffset, uint32(r.NameLength), r.ValueOffset, uint32(r.ValueLength)}
	case format.Version4:
		r := format.DecodeRedirectionV4(rec)
		return rawRedirection{r.Flags, r.NameOffset, r.NameLength, r.ValueOffset, r.ValueLength}
	default:
		r := format.DecodeRedirectionV6(rec)
		return rawRedirection{r.Flags, r.NameOffset, r.NameLength, r.ValueOffset, r.ValueLength}
	}
}

func (t redirTable) resolve(j int) (Redirection, error) {
	r := t.raw(j)
	importer, err := format.ResolveText(t.buf, "importer", r.nameOff, r.nameLen)
	if err != nil {
		return Redirection{}, err
	}
	target, err := format.ResolveText(t.buf, "target", r.valueOff, r.valueLen)
	if err != nil {
		return Redirection{}, err
	}
	return Redirection{Flags: Flags(r.flags), Importer: importer, Target: target, targetLen: r.valueLen}, nil
}

// at decodes a redirection of a table that check has accepted.
func (t redirTable) at(j int) Redirection {
	r, _ := t.resolve(j)
	return r
}

// check validates every text range the table references.
func (t redirTable) check() error {
	for j := range t.count() {
		if _, err := t.resolve(j); err != nil {
			return fmt.Errorf("redirection %d: %w", j, err)
		}
	}
	return nil
}

// tableKey identifies a redirection table by its location in the buffer.
type tableKey struct {
	off, count uint32
}

// tableCache validates each distinct redirection table once, so entries that
// share a value record cost nothing extra.
type tableCache struct {
	buf     []byte
	version uint32
	seen    map[tableKey]redirTable
}

func newTableCache(b []byte, version uint32) *tableCache {
	return &tableCache{buf: b, version: version, seen: make(map[tableKey]redirTable)}
}

// table returns the validated table for key, calling load to locate it the
// first time the key is seen.
func (c *tableCache) table(key tableKey, load func() ([]byte, error)) (redirTable, error) {
	if t, ok := c.seen[key]; ok {
		return t, nil
	}
	tbl, err := load()
	if err != nil {
		return redirTable{}, err
	}
	t := redirTable{buf: c.buf, tbl: tbl, version: c.version}
	if err := t.check(); err != nil {
		return redirTable{}, err
	}
	c.seen[key] = t
	return t, nil
}
