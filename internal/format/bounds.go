package format

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on overflow.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// Table validates that count records of size bytes starting at off fit in b
// and returns the table bytes. what names the table in the returned error.
// An empty table is never bounds checked.
//
//	tbl, err := format.Table(b, "entry table", off, count, format.EntryV6Size)
//	if err != nil {
//	    return err
//	}
func Table(b []byte, what string, off, count uint32, size int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	total, ok := MulOverflowSafe(int(count), size)
	if !ok {
		return nil, rangeErr(what, int64(off), math.MaxInt64, len(b))
	}
	tbl, ok := Slice(b, int(off), total)
	if !ok {
		return nil, rangeErr(what, int64(off), int64(total), len(b))
	}
	return tbl, nil
}
