package apiset

import (
	"errors"

	"github.com/joshuapare/apisetkit/internal/format"
)

var (
	// ErrTruncated indicates the buffer is shorter than the version's fixed
	// header or than its declared Size.
	ErrTruncated = format.ErrTruncated

	// ErrUnknownVersion indicates a version tag other than 2, 4 or 6.
	ErrUnknownVersion = format.ErrUnknownVersion

	// ErrOutOfBounds indicates a stored offset/length reads past the buffer.
	ErrOutOfBounds = format.ErrOutOfBounds

	// ErrNotFound indicates Lookup found no entry for the name.
	ErrNotFound = errors.New("apiset: name not found")
)

// RangeError carries the offending offset and length of an out-of-bounds
// reference. It unwraps to ErrOutOfBounds.
type RangeError = format.RangeError
