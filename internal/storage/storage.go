package storage

import (
	"io"
)

// Storage is the backend for payment slip files. Slips are addressed by an
// opaque key assigned at upload time; the original filename is kept in the
// database, never in the key.
type Storage interface {
	// SaveFile writes the file under the given key, replacing any previous
	// content.
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens the file for reading. The caller must close it.
	ReadFile(key string) (io.ReadCloser, error)

	// FileExists checks if a file exists and returns its size.
	FileExists(key string) (exists bool, size int64, err error)

	// DeleteFile removes a file. Deleting a missing key is not an error.
	DeleteFile(key string) error
}
