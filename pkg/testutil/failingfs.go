package testutil

import (
	"io/fs"

	"github.com/arthur-debert/brewsync/pkg/filesystem"
)

// FailingFS wraps a filesystem and fails every write once armed. Used to
// exercise persistence-failure paths like add's install rollback.
type FailingFS struct {
	filesystem.FS

	// WriteErr is returned from WriteFile when non-nil
	WriteErr error
}

// NewFailingFS wraps the given filesystem
func NewFailingFS(inner filesystem.FS) *FailingFS {
	return &FailingFS{FS: inner}
}

func (f *FailingFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	return f.FS.WriteFile(path, data, perm)
}

// Verify interface compliance
var _ filesystem.FS = (*FailingFS)(nil)
