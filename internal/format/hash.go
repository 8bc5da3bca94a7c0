package format

// Hash folds the UTF-16 code units of t into the API set name hash used by
// the v6 loader: hash = hash*factor + unit, wrapping modulo 2^32. No case
// folding is applied; v6 schemas store names already lowercased.
func Hash(t Text, factor uint32) uint32 {
	var hash uint32
	for i, n := 0, t.Len(); i < n; i++ {
		hash = hash*factor + uint32(t.Unit(i))
	}
	return hash
}

// HashRange resolves [off, off+length) in b and hashes it.
func HashRange(b []byte, factor, off, length uint32) (uint32, error) {
	t, err := ResolveText(b, "hashed name", off, length)
	if err != nil {
		return 0, err
	}
	return Hash(t, factor), nil
}

// HashUnits hashes an already-encoded UTF-16 sequence, for callers hashing a
// name that does not live in a namespace buffer.
func HashUnits(units []uint16, factor uint32) uint32 {
	var hash uint32
	for _, u := range units {
		hash = hash*factor + uint32(u)
	}
	return hash
}
