package format

// Record returns the i-th fixed-size record of a table previously validated
// with Table.
func Record(tbl []byte, i, size int) []byte {
	return tbl[i*size : (i+1)*size]
}

// Records returns how many size-byte records tbl holds.
func Records(tbl []byte, size int) int {
	return len(tbl) / size
}
