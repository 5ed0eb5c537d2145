// Package storage defines the content-directory file-system abstraction.
package storage

import "time"

// FileInfo describes a stored file.
type FileInfo struct {
	Path     string
	Size     int64
	Checksum string
	ModTime  time.Time
}

// Provider is the interface for content file operations. All paths are
// relative to the content root.
type Provider interface {
	// List returns info for every file under dir whose name has one of the
	// given extensions (all files when none are given).
	List(dir string, exts ...string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
