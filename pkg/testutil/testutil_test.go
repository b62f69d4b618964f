package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile(t *testing.T) {
	dir := TempDir(t)

	path := CreateFile(t, dir, "test.txt", "hello world")
	assert.True(t, FileExists(t, path))
	assert.Equal(t, "hello world", ReadFile(t, path))

	nested := CreateFile(t, dir, "sub/dir/test2.txt", "nested")
	assert.True(t, FileExists(t, nested))
}

func TestCreateDir(t *testing.T) {
	parent := TempDir(t)

	dir := CreateDir(t, parent, "a/b/c")
	assert.True(t, DirExists(t, dir))
	assert.False(t, FileExists(t, dir))
}

func TestCreateSymlink(t *testing.T) {
	dir := TempDir(t)

	target := CreateFile(t, dir, "target.txt", "target content")
	link := filepath.Join(dir, "links", "link.txt")
	CreateSymlink(t, target, link)

	assert.True(t, SymlinkExists(t, link))
	AssertSymlink(t, link, target)
	AssertFileContent(t, link, "target content")
}

func TestHome(t *testing.T) {
	h := NewHome(t)

	assert.True(t, DirExists(t, h.Dir))
	assert.True(t, DirExists(t, h.Vault))
	assert.NotEqual(t, h.Dir, h.Vault)

	f := h.File(t, ".bashrc", "alias ll='ls -l'")
	assert.Equal(t, h.Path(".bashrc"), f)

	d := h.Mkdir(t, ".config/app")
	assert.True(t, DirExists(t, d))

	l := h.Link(t, ".profile", f)
	AssertSymlink(t, l, f)

	assert.Equal(t, filepath.Join(h.Vault, "dotfiles", ".bashrc"), h.VaultPath("dotfiles", ".bashrc"))
}

func TestSetMtime(t *testing.T) {
	dir := TempDir(t)
	path := CreateFile(t, dir, "f", "x")

	when := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	SetMtime(t, path, when)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(when))
}

func TestAssertNoEntry(t *testing.T) {
	dir := TempDir(t)
	AssertNoEntry(t, filepath.Join(dir, "missing"))
}

func TestChecksum(t *testing.T) {
	dir := TempDir(t)
	a := CreateFile(t, dir, "a", "same")
	b := CreateFile(t, dir, "b", "same")
	c := CreateFile(t, dir, "c", "different")

	assert.Equal(t, Checksum(t, a), Checksum(t, b))
	assert.NotEqual(t, Checksum(t, a), Checksum(t, c))
}

func TestMemoryFilesystems(t *testing.T) {
	mem := NewMemFS()
	require.NoError(t, mem.MkdirAll("/v", 0755))
	require.NoError(t, mem.WriteFile("/v/f", []byte("1"), 0644))
	data, err := mem.ReadFile("/v/f")
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))

	sfs := NewTestFS()
	require.NoError(t, sfs.MkdirAll("v", 0755))
	require.NoError(t, sfs.WriteFile("v/f", []byte("2"), 0644))
	info, err := sfs.Lstat("v/f")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
