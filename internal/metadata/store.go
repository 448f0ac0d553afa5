package metadata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jakoblorz/go-subprojects/internal/filesystem"
	"github.com/jakoblorz/go-subprojects/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultFileName is the sidecar file name used when none is configured.
const DefaultFileName = "db.json"

const tempAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Store reads and writes the per-directory sidecar file. It holds no state
// beyond its collaborators.
type Store struct {
	fs       filesystem.FileSystem
	fileName string
	logger   *slog.Logger
}

// NewStore creates a Store for the given sidecar file name. An empty name
// falls back to DefaultFileName.
func NewStore(fs filesystem.FileSystem, fileName string, logger *slog.Logger) *Store {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{fs: fs, fileName: fileName, logger: logger}
}

// Path returns the sidecar path for a project directory.
func (s *Store) Path(dir string) string {
	return filepath.Join(dir, s.fileName)
}

// Read returns the metadata stored for dir. A missing, unreadable or
// malformed sidecar yields the zero value; nothing is reported to the caller.
func (s *Store) Read(dir string) models.ProjectMetadata {
	path := s.Path(dir)

	if !s.fs.Exists(path) {
		return models.ProjectMetadata{}
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		s.logger.Debug("sidecar unreadable", slog.String("path", path), slog.String("error", err.Error()))
		return models.ProjectMetadata{}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		s.logger.Debug("sidecar is not a JSON object", slog.String("path", path))
		return models.ProjectMetadata{}
	}

	raw, ok := fields["name"]
	if !ok {
		return models.ProjectMetadata{}
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		s.logger.Debug("sidecar name is not a string", slog.String("path", path))
		return models.ProjectMetadata{}
	}

	return models.ProjectMetadata{Name: name}
}

// Write replaces the sidecar in dir with {"name": name}. The content lands in
// a temp file first and is renamed over the sidecar, so readers never see a
// partial write. dir must already exist.
func (s *Store) Write(dir, name string) error {
	path := s.Path(dir)

	data, err := json.MarshalIndent(models.ProjectMetadata{Name: name}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	data = append(data, '\n')

	suffix, err := gonanoid.Generate(tempAlphabet, 8)
	if err != nil {
		return fmt.Errorf("failed to generate temp name: %w", err)
	}
	tmp := fmt.Sprintf("%s.%s.tmp", path, suffix)

	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata for %s: %w", dir, err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace metadata for %s: %w", dir, err)
	}

	s.logger.Debug("sidecar written", slog.String("path", path))
	return nil
}
