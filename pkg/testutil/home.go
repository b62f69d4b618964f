package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Home is a throwaway home directory with a sibling vault root.
type Home struct {
	Dir   string
	Vault string
}

// NewHome creates an empty home and vault under a fresh temp dir.
func NewHome(t *testing.T) *Home {
	t.Helper()

	base := TempDir(t)
	return &Home{
		Dir:   CreateDir(t, base, "home"),
		Vault: CreateDir(t, base, "vault"),
	}
}

// Path joins rel onto the home directory.
func (h *Home) Path(rel string) string {
	return filepath.Join(h.Dir, rel)
}

// VaultPath joins the given elements onto the vault root.
func (h *Home) VaultPath(elem ...string) string {
	return filepath.Join(append([]string{h.Vault}, elem...)...)
}

// File creates a file under home.
func (h *Home) File(t *testing.T, rel, content string) string {
	t.Helper()
	return CreateFile(t, h.Dir, rel, content)
}

// Mkdir creates a directory under home.
func (h *Home) Mkdir(t *testing.T, rel string) string {
	t.Helper()
	return CreateDir(t, h.Dir, rel)
}

// Link creates a symlink at home/rel pointing to target.
func (h *Home) Link(t *testing.T, rel, target string) string {
	t.Helper()
	link := h.Path(rel)
	CreateSymlink(t, target, link)
	return link
}

// SetMtime sets both access and modification time of path.
func SetMtime(t *testing.T, path string, mtime time.Time) {
	t.Helper()

	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Failed to set times on %s: %v", path, err)
	}
}

// AssertNoEntry checks that nothing, not even a dangling symlink, exists at path.
func AssertNoEntry(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("Entry %s exists but should not", path)
	}
}
