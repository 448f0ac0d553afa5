package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jakoblorz/go-subprojects/internal/filesystem"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// FileName is the preferences file kept in the application config dir.
const FileName = "prefs.json"

// Store persists the last-used root path across runs.
type Store interface {
	Get() (string, error)
	Set(rootPath string) error
}

var _ Store = (*FileStore)(nil)

type document struct {
	RootPath string `json:"root_path"`
}

// FileStore keeps preferences in a small JSON document.
type FileStore struct {
	fs   filesystem.FileSystem
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(fs filesystem.FileSystem, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// DefaultPath returns <user config dir>/subprojects/prefs.json.
func DefaultPath(fs filesystem.FileSystem) (string, error) {
	dir, err := fs.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "subprojects", FileName), nil
}

// Get returns the stored root path. A missing or corrupt file reads as "".
func (s *FileStore) Get() (string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read preferences: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		// Best-effort; a corrupt file behaves like a first run.
		return "", nil
	}

	return doc.RootPath, nil
}

// Set stores rootPath, replacing the file atomically.
func (s *FileStore) Set(rootPath string) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preferences dir: %w", err)
	}

	data, err := json.MarshalIndent(document{RootPath: rootPath}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	suffix, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 8)
	if err != nil {
		return fmt.Errorf("failed to generate temp name: %w", err)
	}
	tmp := s.path + "." + suffix + ".tmp"

	if err := s.fs.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	return nil
}
