package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string]*MockFile
	configDir  string
	readFails  map[string]error
	writeFails map[string]error
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string]*MockFile),
		configDir:  "/home/test/.config",
		readFails:  make(map[string]error),
		writeFails: make(map[string]error),
	}
}

// AddFile adds a file to the mock filesystem
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
		IsDir:   false,
	}
	mfs.ensureParents(cleanPath)
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.ensureParents(cleanPath)
}

func (mfs *MockFileSystem) ensureParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = &MockFile{
				Mode:    0755 | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
		dir = filepath.Dir(dir)
	}
}

// FailReads makes every ReadFile of path return err.
func (mfs *MockFileSystem) FailReads(path string, err error) {
	mfs.readFails[filepath.Clean(path)] = err
}

// FailWrites makes every write that lands in dir return err. dir may also
// name a single file.
func (mfs *MockFileSystem) FailWrites(dir string, err error) {
	mfs.writeFails[filepath.Clean(dir)] = err
}

func (mfs *MockFileSystem) writeFailure(path string) error {
	if err, ok := mfs.writeFails[path]; ok {
		return err
	}
	if err, ok := mfs.writeFails[filepath.Dir(path)]; ok {
		return err
	}
	return nil
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)
	if err, ok := mfs.readFails[cleanPath]; ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)

	if err := mfs.writeFailure(cleanPath); err != nil {
		return &fs.PathError{Op: "open", Path: path, Err: err}
	}

	// Parent directory must already exist
	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		parent, exists := mfs.files[dir]
		if !exists || !parent.IsDir {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	if existing, ok := mfs.files[cleanPath]; ok && existing.IsDir {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(data))
	copy(content, data)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    perm,
		ModTime: time.Now(),
		IsDir:   false,
	}
	return nil
}

func (mfs *MockFileSystem) Rename(oldPath, newPath string) error {
	src := filepath.Clean(oldPath)
	dst := filepath.Clean(newPath)

	if err := mfs.writeFailure(dst); err != nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
	}

	file, exists := mfs.files[src]
	if !exists {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrNotExist}
	}
	if parent, ok := mfs.files[filepath.Dir(dst)]; !ok || !parent.IsDir {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: errors.New("renaming directories is not supported")}
	}

	mfs.files[dst] = file
	delete(mfs.files, src)
	return nil
}

func (mfs *MockFileSystem) AppendFile(path string, perm fs.FileMode) (io.WriteCloser, error) {
	cleanPath := filepath.Clean(path)

	if err := mfs.writeFailure(cleanPath); err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	if !mfs.Exists(cleanPath) {
		if err := mfs.WriteFile(cleanPath, nil, perm); err != nil {
			return nil, err
		}
	}
	file := mfs.files[cleanPath]
	if file.IsDir {
		return nil, &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	return &mockAppender{file: file}, nil
}

// mockAppender appends writes to a MockFile
type mockAppender struct {
	file *MockFile
}

func (a *mockAppender) Write(p []byte) (int, error) {
	a.file.Content = append(a.file.Content, p...)
	a.file.ModTime = time.Now()
	return len(p), nil
}

func (a *mockAppender) Close() error { return nil }

func (mfs *MockFileSystem) Remove(path string) error {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(mfs.files, cleanPath)
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := filepath.Clean(path)

	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, errors.New("not a directory")
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p == cleanPath || filepath.Dir(p) != cleanPath {
			continue
		}
		info := &mockFileInfo{
			name:    filepath.Base(p),
			size:    int64(len(f.Content)),
			mode:    f.Mode,
			modTime: f.ModTime,
			isDir:   f.IsDir,
		}
		entries = append(entries, &mockDirEntry{info: info})
	}

	// Sort entries by name, like os.ReadDir
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	parts := strings.Split(cleanPath, string(filepath.Separator))

	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if current == "" {
			current = string(filepath.Separator) + part
		} else {
			current = filepath.Join(current, part)
		}

		if existing, exists := mfs.files[current]; exists {
			if !existing.IsDir {
				return &fs.PathError{Op: "mkdir", Path: current, Err: errors.New("not a directory")}
			}
			continue
		}
		mfs.files[current] = &MockFile{
			Mode:    perm | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}

	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) UserConfigDir() (string, error) {
	return mfs.configDir, nil
}

// SetConfigDir sets the directory UserConfigDir reports
func (mfs *MockFileSystem) SetConfigDir(dir string) {
	mfs.configDir = dir
}

// Paths returns every path below root (root excluded), sorted.
func (mfs *MockFileSystem) Paths(root string) []string {
	cleanRoot := filepath.Clean(root)
	var paths []string
	for p := range mfs.files {
		if strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
