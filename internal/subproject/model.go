package subproject

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-subprojects/internal/filesystem"
	"github.com/jakoblorz/go-subprojects/internal/metadata"
	"github.com/jakoblorz/go-subprojects/internal/models"
	"github.com/jakoblorz/go-subprojects/internal/prefs"
)

var (
	// ErrInvalidRoot is returned by Load when the root path is empty, missing,
	// not a directory, or cannot be listed.
	ErrInvalidRoot = errors.New("invalid root path")

	// ErrInvalidDirName is returned by SetInfo when the record identity is not
	// a single path segment below the root.
	ErrInvalidDirName = errors.New("invalid directory name")
)

// Model owns the root path and the subproject list derived from it.
type Model struct {
	fs     filesystem.FileSystem
	meta   *metadata.Store
	prefs  prefs.Store
	logger *slog.Logger

	respectGitIgnore bool
	includeHidden    bool

	rootPath string
	items    []models.Subproject
}

// Option configures model behavior.
type Option func(*Model)

// WithGitIgnore skips directories matched by <root>/.gitignore.
func WithGitIgnore(enabled bool) Option {
	return func(m *Model) {
		m.respectGitIgnore = enabled
	}
}

// WithHidden controls whether dot-directories are listed.
func WithHidden(enabled bool) Option {
	return func(m *Model) {
		m.includeHidden = enabled
	}
}

// WithLogger sets the logger used for skipped entries and load results.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModel creates a Model with an empty root path and list.
func NewModel(fs filesystem.FileSystem, meta *metadata.Store, store prefs.Store, options ...Option) *Model {
	m := &Model{
		fs:            fs,
		meta:          meta,
		prefs:         store,
		logger:        slog.New(slog.DiscardHandler),
		includeHidden: true,
		items:         []models.Subproject{},
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// Restore reads the last-used root path from the preference store.
func (m *Model) Restore() error {
	rootPath, err := m.prefs.Get()
	if err != nil {
		return fmt.Errorf("failed to restore root path: %w", err)
	}
	m.rootPath = rootPath
	return nil
}

// RootPath returns the current root path.
func (m *Model) RootPath() string {
	return m.rootPath
}

// SetRootPath stores path and persists it immediately. It does not reload;
// call Load when the scan should happen. The in-memory path is updated even
// when persisting fails.
func (m *Model) SetRootPath(path string) error {
	m.rootPath = path
	if err := m.prefs.Set(path); err != nil {
		return fmt.Errorf("failed to persist root path: %w", err)
	}
	return nil
}

// Load rebuilds the list from the directories directly below the root path.
// On an invalid root the list is left empty and ErrInvalidRoot is returned.
func (m *Model) Load() ([]models.Subproject, error) {
	m.items = []models.Subproject{}

	root := m.rootPath
	if strings.TrimSpace(root) == "" {
		return m.Items(), fmt.Errorf("%w: no path set", ErrInvalidRoot)
	}

	info, err := m.fs.Stat(root)
	if err != nil {
		m.logger.Warn("root path not accessible", slog.String("root", root), slog.String("error", err.Error()))
		return m.Items(), fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, root)
	}
	if !info.IsDir() {
		m.logger.Warn("root path is not a directory", slog.String("root", root))
		return m.Items(), fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	entries, err := m.fs.ReadDir(root)
	if err != nil {
		m.logger.Warn("root path not listable", slog.String("root", root), slog.String("error", err.Error()))
		return m.Items(), fmt.Errorf("%w: cannot list %s", ErrInvalidRoot, root)
	}

	var ignore gitignore.GitIgnore
	if m.respectGitIgnore {
		ignore = m.loadGitIgnore(root)
	}

	items := make([]models.Subproject, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		dir := filepath.Join(root, name)

		// Symlinks are skipped, even when they point at a directory.
		if !entry.IsDir() {
			m.logger.Debug("ignoring non-directory", slog.String("entry", name))
			continue
		}

		if !m.includeHidden && strings.HasPrefix(name, ".") {
			m.logger.Debug("ignoring hidden directory", slog.String("entry", name))
			continue
		}

		if ignore != nil {
			if match := ignore.Relative(name, true); match != nil && match.Ignore() {
				m.logger.Debug("ignoring gitignored directory", slog.String("entry", name))
				continue
			}
		}

		meta := m.meta.Read(dir)
		items = append(items, models.NewSubproject(name, meta.Name))
	}

	m.items = items
	m.logger.Info("subprojects loaded", slog.String("root", root), slog.Int("count", len(items)))

	return m.Items(), nil
}

// Items returns a copy of the current list; changing it never affects the
// model.
func (m *Model) Items() []models.Subproject {
	items := make([]models.Subproject, len(m.items))
	copy(items, m.items)
	return items
}

// SetInfo persists name for dirName. The in-memory list is not updated and
// stays as loaded until the next Load.
func (m *Model) SetInfo(dirName, name string) error {
	if !isSegment(dirName) {
		return fmt.Errorf("%w: %q", ErrInvalidDirName, dirName)
	}

	if err := m.meta.Write(filepath.Join(m.rootPath, dirName), name); err != nil {
		return err
	}

	m.logger.Info("subproject name saved", slog.String("dir", dirName))
	return nil
}

// isSegment reports whether name is a single entry below a directory. Only
// the OS separator counts, so names like `a\b` are valid on POSIX.
func isSegment(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return name == filepath.Base(name) && !strings.ContainsRune(name, filepath.Separator)
}

func (m *Model) loadGitIgnore(root string) gitignore.GitIgnore {
	ignorePath := filepath.Join(root, ".gitignore")
	if !m.fs.Exists(ignorePath) {
		return nil
	}

	data, err := m.fs.ReadFile(ignorePath)
	if err != nil {
		m.logger.Warn("failed to read .gitignore", slog.String("path", ignorePath), slog.String("error", err.Error()))
		return nil
	}

	return gitignore.New(bytes.NewReader(data), root, nil)
}
