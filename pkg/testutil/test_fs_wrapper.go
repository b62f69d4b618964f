package testutil

import (
	"io/fs"

	"github.com/arthur-debert/homevault/pkg/filesystem"
	"github.com/arthur-debert/homevault/pkg/types"
	synthfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/spf13/afero"
)

// TestFS wraps synthfs' TestFileSystem to implement types.FS
type TestFS struct {
	*synthfs.TestFileSystem
}

// NewTestFS creates a new in-memory synthfs filesystem that implements types.FS.
// Paths are relative to the filesystem root.
func NewTestFS() types.FS {
	return &TestFS{
		TestFileSystem: synthfs.NewTestFileSystem(),
	}
}

// Lstat implements types.FS
// TestFileSystem doesn't distinguish symlinks from regular files.
func (t *TestFS) Lstat(name string) (fs.FileInfo, error) {
	return t.Stat(name)
}

// NewMemFS creates an afero MemMapFs backed types.FS.
func NewMemFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}
