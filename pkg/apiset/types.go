package apiset

import (
	"strings"

	"github.com/joshuapare/apisetkit/internal/format"
)

// Text is a UTF-16LE text range borrowed from the namespace buffer.
type Text = format.Text

// Flags are the API_SET_FLAG_* bits carried by v4 and v6 namespaces, entries
// and redirections.
type Flags uint32

const (
	// FlagSealed marks a sealed namespace or entry.
	FlagSealed Flags = format.FlagSealed
	// FlagExt marks an extension (ext-) API set.
	FlagExt Flags = format.FlagExt
)

// Sealed reports whether FlagSealed is set.
func (f Flags) Sealed() bool { return f&FlagSealed != 0 }

// Ext reports whether FlagExt is set.
func (f Flags) Ext() bool { return f&FlagExt != 0 }

// Names returns the names of the known bits that are set, in display order.
func (f Flags) Names() []string {
	names := make([]string, 0, 2)
	if f.Sealed() {
		names = append(names, "sealed")
	}
	if f.Ext() {
		names = append(names, "ext")
	}
	return names
}

// Format renders the flags as "(sealed,ext)". With hideEmpty, a zero value
// renders as the empty string instead of "()". Unknown bits are not shown.
func (f Flags) Format(hideEmpty bool) string {
	if hideEmpty && f == 0 {
		return ""
	}
	return "(" + strings.Join(f.Names(), ",") + ")"
}

// String renders the flags without suppression.
func (f Flags) String() string { return f.Format(false) }

// Entry is one virtual name binding.
type Entry struct {
	Index int
	Flags Flags // always zero for v2
	// Name is the full stored name. For v6 this is the hashed prefix followed
	// by the unhashed suffix.
	Name Text
	// Alias is only stored by v4.
	Alias Text
	// HashedLength is the byte length of the hashed prefix (v6 only).
	HashedLength uint32
	// Hash is the hash recomputed over the hashed prefix (v6 only).
	Hash uint32

	hashed     bool
	hashedName Text
	suffix     Text
	redirs     redirTable
}

// HashedName returns the portion of Name covered by the hash. For v2 and v4
// it is the whole name.
func (e *Entry) HashedName() Text {
	if !e.hashed {
		return e.Name
	}
	return e.hashedName
}

// Suffix returns the unhashed remainder of a v6 name. It starts HashedLength
// bytes into the name.
func (e *Entry) Suffix() Text {
	if !e.hashed {
		return Text{}
	}
	return e.suffix
}

// HashEntry is one record of the v6 hash table.
type HashEntry struct {
	Hash  uint32
	Index uint32
}

// Namespace is a decoded API set schema. Fields that a version does not store
// are zero.
type Namespace struct {
	Version    uint32
	Size       uint32 // v4, v6
	Flags      Flags  // v4, v6
	Count      uint32
	HashFactor uint32 // v6

	Entries []Entry
	Hashes  []HashEntry // v6, table order
}

// Hashed reports whether the namespace carries a hash table (v6).
func (ns *Namespace) Hashed() bool { return ns.Version == format.Version6 }
