package apiset

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joshuapare/apisetkit/internal/format"
	"github.com/joshuapare/apisetkit/internal/mmfile"
)

// File is a schema file mapped read-only and decoded. Namespace borrows the
// mapping and must not be used after Close.
type File struct {
	Namespace *Namespace

	path    string
	data    []byte
	cleanup func() error
}

// Open maps the file at path and decodes it.
func Open(path string) (*File, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("apiset: open %s: %w", path, err)
	}
	Logger().Debug("mapped schema file", zap.String("path", path), zap.Int("bytes", len(data)))

	if len(data) < format.VersionFieldSize {
		_ = cleanup()
		return nil, fmt.Errorf("apiset: %s: too small file: %w", path, ErrTruncated)
	}
	ns, err := Decode(data)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Namespace: ns, path: path, data: data, cleanup: cleanup}, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Bytes returns the raw schema bytes. They must not be modified.
func (f *File) Bytes() []byte { return f.data }

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	if f == nil || f.cleanup == nil {
		return nil
	}
	err := f.cleanup()
	f.cleanup = nil
	f.data = nil
	f.Namespace = nil
	return err
}
