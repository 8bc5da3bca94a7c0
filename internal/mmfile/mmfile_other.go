//go:build !unix

// Package mmfile maps API set schema files into memory read-only.
package mmfile

import "os"

// Map reads the whole file where mmap is not used.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
