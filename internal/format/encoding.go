package format

import "encoding/binary"

// ReadU16 reads a little-endian uint16 at off. The caller guarantees bounds.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a little-endian uint32 at off. The caller guarantees bounds.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// CheckedReadU32 reads a little-endian uint32 at off, failing with
// ErrTruncated when fewer than four bytes remain.
func CheckedReadU32(b []byte, off int) (uint32, error) {
	if !Has(b, off, 4) {
		return 0, ErrTruncated
	}
	return ReadU32(b, off), nil
}

// PeekVersion returns the version tag at offset 0 without interpreting the
// rest of the buffer.
func PeekVersion(b []byte) (uint32, error) {
	return CheckedReadU32(b, NSV2VersionOffset)
}
