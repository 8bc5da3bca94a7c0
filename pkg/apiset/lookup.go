package apiset

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/joshuapare/apisetkit/internal/format"
)

// Lookup finds the entry for a virtual library name such as
// "api-ms-win-core-file-l1-2-0.dll". The name is matched case-insensitively
// and a trailing ".dll" is ignored.
//
// For v6 the text before the last '-' is hashed with the namespace factor and
// located in the hash table by binary search; the hashed prefix of the
// candidate entry must then match. v2 and v4 store names without the "api-"
// or "ext-" prefix and are scanned linearly.
func (ns *Namespace) Lookup(name string) (*Entry, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("apiset: lookup %q: %w", name, ErrNotFound)
	}

	var e *Entry
	if ns.Hashed() {
		e = ns.lookupHashed(key)
	} else {
		e = ns.lookupLinear(key)
	}
	if e == nil {
		return nil, fmt.Errorf("apiset: lookup %q: %w", name, ErrNotFound)
	}
	return e, nil
}

func (ns *Namespace) lookupHashed(key string) *Entry {
	prefix := key
	if i := strings.LastIndexByte(key, '-'); i >= 0 {
		prefix = key[:i]
	}
	hash := format.HashUnits(utf16.Encode([]rune(prefix)), ns.HashFactor)

	i := sort.Search(len(ns.Hashes), func(i int) bool { return ns.Hashes[i].Hash >= hash })
	for ; i < len(ns.Hashes) && ns.Hashes[i].Hash == hash; i++ {
		idx := int(ns.Hashes[i].Index)
		if idx >= len(ns.Entries) {
			continue
		}
		if e := &ns.Entries[idx]; e.HashedName().EqualFold(prefix) {
			return e
		}
	}
	return nil
}

func (ns *Namespace) lookupLinear(key string) *Entry {
	short := key
	for _, p := range []string{"api-", "ext-"} {
		if s, ok := strings.CutPrefix(key, p); ok {
			short = s
			break
		}
	}
	for i := range ns.Entries {
		e := &ns.Entries[i]
		if e.Name.EqualFold(short) || e.Name.EqualFold(key) {
			return e
		}
	}
	return nil
}

// normalizeName lowercases ASCII letters and strips a trailing ".dll".
func normalizeName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	s, _ := strings.CutSuffix(string(b), ".dll")
	return s
}

// Resolve picks the host the loader would use when importer loads this API
// set. A redirection scoped to importer (case-insensitive) wins over the
// default redirection, which is the first one without an importer. Empty
// targets are never returned.
func (e *Entry) Resolve(importer string) (Text, bool) {
	if importer != "" {
		for r := range e.Redirections() {
			if r.Present() && !r.Importer.IsEmpty() && r.Importer.EqualFold(importer) {
				return r.Target, true
			}
		}
	}
	for r := range e.Redirections() {
		if r.Present() && r.Importer.IsEmpty() {
			return r.Target, true
		}
	}
	return nil, false
}
