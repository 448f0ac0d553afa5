package filesystem

import (
	"io"
	"io/fs"
)

// FileSystem is the gateway every component uses to touch disk, so the
// browser can be driven entirely from memory in tests.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	AppendFile(path string, perm fs.FileMode) (io.WriteCloser, error)
	Rename(oldPath, newPath string) error
	Remove(path string) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	UserConfigDir() (string, error)
}

// IsDir reports whether path exists and resolves to a directory.
func IsDir(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
