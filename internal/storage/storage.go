// Package storage persists raw blob bytes, decoupled from file metadata.
package storage

import (
	"context"
	"errors"
)

// ErrWrite wraps any underlying I/O failure while persisting a blob.
// Callers must not persist file metadata when a write fails.
var ErrWrite = errors.New("blob write failed")

// ErrRead wraps any underlying I/O failure while reading a blob.
var ErrRead = errors.New("blob read failed")

// Store persists and retrieves raw bytes by content path. Content paths are
// opaque strings minted by NewPath; file metadata holds them as weak
// references with no integrity enforcement. Thumbnail variants live at
// derived paths ("<path>_<width>") written directly via WriteBytes.
type Store interface {
	// EnsureRoot prepares the storage root; safe to call more than once.
	EnsureRoot(ctx context.Context) error
	// NewPath returns a fresh unique content path under the root.
	NewPath() string
	// WriteBytes persists data at path.
	WriteBytes(ctx context.Context, path string, data []byte) error
	// ReadBytes returns the bytes stored at path.
	ReadBytes(ctx context.Context, path string) ([]byte, error)
}
