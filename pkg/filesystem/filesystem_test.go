package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	require.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "vault", ".marker")
	content := []byte("1")

	require.NoError(t, fs.MkdirAll(filepath.Dir(testFile), 0755))
	require.NoError(t, fs.WriteFile(testFile, content, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, ".marker", info.Name())

	got, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.Symlink(testFile, link))
	target, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, testFile, target)

	linfo, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, linfo.Mode()&os.ModeSymlink)

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "vault")))
}

func TestNewAferoFS_MemMap(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fs.MkdirAll("/vault/bin", 0755))
	require.NoError(t, fs.WriteFile("/vault/bin/.links", []byte("{}"), 0644))

	data, err := fs.ReadFile("/vault/bin/.links")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, err = fs.ReadFile("/vault/bin")
	assert.Error(t, err, "reading a directory should fail")

	info, err := fs.Lstat("/vault/bin/.links")
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	require.NoError(t, fs.Symlink("target", "/vault/link"))
	target, err := fs.Readlink("/vault/link")
	require.NoError(t, err)
	assert.Equal(t, "target", target)
}

func TestNewAferoFS_OsBacked(t *testing.T) {
	dir := t.TempDir()
	fs := NewAferoFS(afero.NewOsFs())

	real := filepath.Join(dir, "real")
	link := filepath.Join(dir, "link")
	require.NoError(t, fs.WriteFile(real, []byte("x"), 0644))
	require.NoError(t, fs.Symlink("real", link))

	target, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "real", target)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}
