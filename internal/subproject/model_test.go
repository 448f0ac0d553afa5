package subproject

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/go-subprojects/internal/filesystem"
	"github.com/jakoblorz/go-subprojects/internal/metadata"
	"github.com/jakoblorz/go-subprojects/internal/models"
	"github.com/jakoblorz/go-subprojects/internal/prefs"
	"github.com/stretchr/testify/require"
)

const prefsPath = "/home/test/.config/subprojects/prefs.json"

func newTestModel(mfs *filesystem.MockFileSystem, options ...Option) *Model {
	return NewModel(mfs, metadata.NewStore(mfs, "", nil), prefs.NewFileStore(mfs, prefsPath), options...)
}

func loadedModel(t *testing.T, mfs *filesystem.MockFileSystem, root string, options ...Option) *Model {
	t.Helper()
	m := newTestModel(mfs, options...)
	require.NoError(t, m.SetRootPath(root))
	_, err := m.Load()
	require.NoError(t, err)
	return m
}

func TestLoad_ExampleScenario(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/projects/alpha/db.json", []byte(`{"name":"Alpha Project"}`))
	mfs.AddDir("/projects/beta")
	mfs.AddFile("/projects/readme.txt", []byte("hello"))

	m := newTestModel(mfs)
	require.NoError(t, m.SetRootPath("/projects"))

	items, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, []models.Subproject{
		{DirName: "alpha", DisplayName: "Alpha Project"},
		{DirName: "beta", DisplayName: ""},
	}, items)
	require.Equal(t, items, m.Items())
}

func TestLoad_RoundTrip(t *testing.T) {
	names := []string{"Alpha Project", "", "名称 with unicode", `quotes " and \ slashes`}

	for _, name := range names {
		mfs := filesystem.NewMockFileSystem()
		mfs.AddDir("/projects/alpha")

		m := loadedModel(t, mfs, "/projects")
		require.NoError(t, m.SetInfo("alpha", name))

		items, err := m.Load()
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, name, items[0].DisplayName)
	}
}

func TestSetInfo_RoundTripsBackslashDirName(t *testing.T) {
	if filepath.Separator == '\\' {
		t.Skip("backslash is a separator on this platform")
	}

	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir(`/projects/a\b`)

	m := loadedModel(t, mfs, "/projects")
	require.Equal(t, []models.Subproject{{DirName: `a\b`}}, m.Items())

	require.NoError(t, m.SetInfo(`a\b`, "Named"))

	items, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, []models.Subproject{{DirName: `a\b`, DisplayName: "Named"}}, items)
}

func TestLoad_SkipsSymlinkedDirectories(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0o755))
	if err := os.Symlink(target, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	osfs := filesystem.NewOSFileSystem()
	m := NewModel(osfs, metadata.NewStore(osfs, "", nil), prefs.NewFileStore(osfs, filepath.Join(t.TempDir(), "prefs.json")))
	require.NoError(t, m.SetRootPath(root))

	items, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, []models.Subproject{{DirName: "real"}}, items)
}

func TestLoad_MissingMetadataDefaultsToEmptyName(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/projects/beta")

	m := loadedModel(t, mfs, "/projects")
	require.Equal(t, []models.Subproject{{DirName: "beta"}}, m.Items())
}

func TestLoad_CorruptMetadataIsNonFatal(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/projects/gamma/db.json", []byte(`{"name": `))

	m := newTestModel(mfs)
	require.NoError(t, m.SetRootPath("/projects"))

	items, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, []models.Subproject{{DirName: "gamma"}}, items)
}

func TestLoad_ExcludesNonDirectories(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/projects/a")
	mfs.AddDir("/projects/b")
	mfs.AddDir("/projects/c")
	mfs.AddFile("/projects/notes.md", []byte("#"))
	mfs.AddFile("/projects/db.json", []byte(`{"name":"root"}`))

	m := loadedModel(t, mfs, "/projects")

	items := m.Items()
	require.Len(t, items, 3)
	for _, item := range items {
		require.NotEqual(t, "notes.md", item.DirName)
		require.NotEqual(t, "db.json", item.DirName)
	}
}

func TestLoad_InvalidRoot(t *testing.T) {
	tests := []struct {
		name  string
		root  string
		setup func(*filesystem.MockFileSystem)
	}{
		{"missing", "/nowhere", func(*filesystem.MockFileSystem) {}},
		{"file", "/projects/readme.txt", func(mfs *filesystem.MockFileSystem) {
			mfs.AddFile("/projects/readme.txt", []byte("x"))
		}},
		{"empty", "", func(*filesystem.MockFileSystem) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := filesystem.NewMockFileSystem()
			mfs.AddDir("/projects/alpha")
			tt.setup(mfs)

			m := newTestModel(mfs)

			// A previous successful load must not leak into the failed one.
			require.NoError(t, m.SetRootPath("/projects"))
			_, err := m.Load()
			require.NoError(t, err)
			require.Len(t, m.Items(), 1)

			require.NoError(t, m.SetRootPath(tt.root))

			var items []models.Subproject
			require.NotPanics(t, func() {
				items, err = m.Load()
			})
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidRoot), "got %v", err)
			require.NotNil(t, items)
			require.Empty(t, items)
			require.Empty(t, m.Items())
		})
	}
}

func TestSetInfo_LeavesListStale(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/projects/alpha/db.json", []byte(`{"name":"Before"}`))

	m := loadedModel(t, mfs, "/projects")
	require.NoError(t, m.SetInfo("alpha", "After"))

	require.Equal(t, "Before", m.Items()[0].DisplayName)

	_, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, "After", m.Items()[0].DisplayName)
}

func TestSetInfo_WriteFailurePropagates(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/projects/alpha")

	m := loadedModel(t, mfs, "/projects")
	mfs.FailWrites("/projects/alpha", fs.ErrPermission)

	err := m.SetInfo("alpha", "Alpha")
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrPermission))
}

func TestSetInfo_RejectsPathsOutsideRoot(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/projects/alpha")

	m := loadedModel(t, mfs, "/projects")

	for _, dirName := range []string{"", ".", "..", "../etc", "alpha/nested"} {
		err := m.SetInfo(dirName, "x")
		require.True(t, errors.Is(err, ErrInvalidDirName), "dirName %q: got %v", dirName, err)
	}
	require.False(t, mfs.Exists("/db.json"))
	require.False(t, mfs.Exists("/projects/db.json"))
}

func TestItems_ReturnsCopy(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/projects/alpha/db.json", []byte(`{"name":"Alpha"}`))

	m := loadedModel(t, mfs, "/projects")

	items := m.Items()
	items[0].DisplayName = "mutated"

	require.Equal(t, []models.Subproject{{DirName: "alpha", DisplayName: "Alpha"}}, m.Items())
}

func TestSetRootPath_PersistsWithoutLoading(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/projects/alpha")

	m := newTestModel(mfs)
	require.NoError(t, m.SetRootPath("/projects"))
	require.Empty(t, m.Items())

	restored := newTestModel(mfs)
	require.NoError(t, restored.Restore())
	require.Equal(t, "/projects", restored.RootPath())
}

func TestSetRootPath_PersistFailure(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/home/test/.config/subprojects")
	mfs.FailWrites("/home/test/.config/subprojects", fs.ErrPermission)

	m := newTestModel(mfs)
	err := m.SetRootPath("/projects")
	require.Error(t, err)
	require.Equal(t, "/projects", m.RootPath())
}

func TestRestore_FirstRun(t *testing.T) {
	m := newTestModel(filesystem.NewMockFileSystem())
	require.NoError(t, m.Restore())
	require.Equal(t, "", m.RootPath())
}

func TestLoad_HiddenAndGitIgnored(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/projects/.cache")
	mfs.AddDir("/projects/alpha")
	mfs.AddDir("/projects/build")
	mfs.AddFile("/projects/.gitignore", []byte("build/\n"))

	all := loadedModel(t, mfs, "/projects")
	require.Len(t, all.Items(), 3)

	filtered := loadedModel(t, mfs, "/projects", WithHidden(false), WithGitIgnore(true))
	require.Equal(t, []models.Subproject{{DirName: "alpha"}}, filtered.Items())
}
