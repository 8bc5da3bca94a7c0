package format

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated indicates the buffer is shorter than a fixed header or than
	// the size the namespace declares for itself.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnknownVersion indicates a version tag other than 2, 4 or 6.
	ErrUnknownVersion = errors.New("format: unknown api set version")
	// ErrOutOfBounds indicates an offset/length pair stored in the namespace
	// points past the end of the buffer.
	ErrOutOfBounds = errors.New("format: reference out of bounds")
)

// RangeError describes an out-of-bounds reference. It unwraps to ErrOutOfBounds.
type RangeError struct {
	What   string // "name", "alias", "value", "entry table", ...
	Offset int64
	Length int64
	BufLen int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %v (offset=0x%X length=%d buffer=%d)",
		e.What, ErrOutOfBounds, e.Offset, e.Length, e.BufLen)
}

func (e *RangeError) Unwrap() error { return ErrOutOfBounds }

func rangeErr(what string, off, n int64, bufLen int) error {
	return &RangeError{What: what, Offset: off, Length: n, BufLen: bufLen}
}
