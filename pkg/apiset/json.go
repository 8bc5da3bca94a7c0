package apiset

import (
	"encoding/json"
	"io"
)

type jsonRedirection struct {
	Importer string   `json:"importer,omitempty"`
	Target   string   `json:"target"`
	Flags    []string `json:"flags,omitempty"`
}

type jsonEntry struct {
	Index        int               `json:"index"`
	Name         string            `json:"name"`
	HashedName   string            `json:"hashedName,omitempty"`
	Hash         string            `json:"hash,omitempty"`
	Alias        string            `json:"alias,omitempty"`
	Flags        []string          `json:"flags,omitempty"`
	Redirections []jsonRedirection `json:"redirections"`
}

type jsonHash struct {
	Hash  string `json:"hash"`
	Index uint32 `json:"index"`
	// Valid is false when the hash does not match the entry it points at.
	Valid bool `json:"valid"`
}

type jsonNamespace struct {
	Version    uint32      `json:"version"`
	Size       uint32      `json:"size,omitempty"`
	Flags      []string    `json:"flags,omitempty"`
	Count      uint32      `json:"count"`
	HashFactor uint32      `json:"hashFactor,omitempty"`
	Entries    []jsonEntry `json:"entries"`
	Hashes     []jsonHash  `json:"hashes,omitempty"`
}

// WriteJSON writes an indented JSON document describing the namespace. Unlike
// WriteText it includes empty redirections, importer names, v4 aliases and a
// validity check of every v6 hash record.
func (ns *Namespace) WriteJSON(w io.Writer) error {
	doc := jsonNamespace{
		Version:    ns.Version,
		Size:       ns.Size,
		Flags:      ns.Flags.Names(),
		Count:      ns.Count,
		HashFactor: ns.HashFactor,
		Entries:    make([]jsonEntry, 0, len(ns.Entries)),
	}
	for i := range ns.Entries {
		e := &ns.Entries[i]
		je := jsonEntry{
			Index:        e.Index,
			Name:         e.Name.String(),
			Alias:        e.Alias.String(),
			Flags:        e.Flags.Names(),
			Redirections: make([]jsonRedirection, 0, e.NumRedirections()),
		}
		if ns.Hashed() {
			je.HashedName = e.HashedName().String()
			je.Hash = formatHash(e.Hash)
		}
		for r := range e.Redirections() {
			je.Redirections = append(je.Redirections, jsonRedirection{
				Importer: r.Importer.String(),
				Target:   r.Target.String(),
				Flags:    r.Flags.Names(),
			})
		}
		doc.Entries = append(doc.Entries, je)
	}
	for _, he := range ns.Hashes {
		valid := int(he.Index) < len(ns.Entries) && ns.Entries[he.Index].Hash == he.Hash
		doc.Hashes = append(doc.Hashes, jsonHash{Hash: formatHash(he.Hash), Index: he.Index, Valid: valid})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
