package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
)

// DefaultRoot is the local storage directory used when none is configured.
const DefaultRoot = "/tmp/files_manager"

// Disk stores blobs as flat files under a root directory.
type Disk struct{ root string }

// NewDisk constructs a disk store rooted at dir (DefaultRoot if empty).
func NewDisk(dir string) *Disk {
	if dir == "" {
		dir = DefaultRoot
	}
	return &Disk{root: dir}
}

// EnsureRoot creates the root directory if it does not exist.
func (d *Disk) EnsureRoot(context.Context) error {
	if err := os.MkdirAll(d.root, 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// NewPath returns a unique absolute path under the root.
func (d *Disk) NewPath() string {
	return filepath.Join(d.root, uuid.Must(uuid.NewV4()).String())
}

// WriteBytes persists data at path.
func (d *Disk) WriteBytes(_ context.Context, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// ReadBytes returns the bytes stored at path.
func (d *Disk) ReadBytes(_ context.Context, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return b, nil
}
