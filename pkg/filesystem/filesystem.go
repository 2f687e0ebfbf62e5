// Package filesystem provides the filesystem abstraction used by the
// declaration store and manifest generator so tests can run against a
// temp directory or an in-memory implementation.
package filesystem

import (
	"io/fs"
	"os"
)

// FS is the minimal filesystem surface brewsync needs
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
}

// OS implements FS using the real filesystem
type OS struct{}

// NewOS creates a filesystem backed by the operating system
func NewOS() *OS {
	return &OS{}
}

func (o *OS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *OS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *OS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (o *OS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *OS) Remove(name string) error {
	return os.Remove(name)
}

// Verify interface compliance
var _ FS = (*OS)(nil)
