package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/homevault/pkg/datastore"
	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/filesystem"
	"github.com/arthur-debert/homevault/pkg/testutil"
	"github.com/arthur-debert/homevault/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	f := newFixture(t)
	mtime := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	script := f.home.File(t, "bin/tool", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(script, 0755))
	testutil.SetMtime(t, script, mtime)
	f.home.File(t, "bin/lib/helper.sh", "helper")
	rc := f.home.File(t, ".toolrc", "opt=1")
	testutil.SetMtime(t, rc, mtime)

	_, err := f.engine.ToVault("data", f.items("bin", ".toolrc"))
	require.NoError(t, err)

	home := freshHome(t)
	res, err := f.engine.FromVault("data", itemsUnder(home, "bin", ".toolrc"), false)
	require.NoError(t, err)
	assert.False(t, res.Legacy)
	assert.Equal(t, 2, res.Copied)

	testutil.AssertFileContent(t, filepath.Join(home, "bin/tool"), "#!/bin/sh\n")
	testutil.AssertFileContent(t, filepath.Join(home, "bin/lib/helper.sh"), "helper")
	testutil.AssertFileContent(t, filepath.Join(home, ".toolrc"), "opt=1")

	info, err := os.Stat(filepath.Join(home, "bin/tool"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime))

	info, err = os.Stat(filepath.Join(home, ".toolrc"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))

	// metadata files stay in the vault
	testutil.AssertNoEntry(t, filepath.Join(home, ".hv.unit.version"))
}

func TestRoundTrip_SymlinkInsideHome(t *testing.T) {
	f := newFixture(t)
	f.home.File(t, "a/real", "payload")
	f.home.Link(t, "a/link", "real")

	_, err := f.engine.ToVault("data", f.items("a/link"))
	require.NoError(t, err)

	home := freshHome(t)
	res, err := f.engine.FromVault("data", itemsUnder(home, "a/link"), false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Links)
	assert.Equal(t, 1, res.Copied)
	assert.Equal(t, 0, res.Dropped)

	testutil.AssertSymlink(t, filepath.Join(home, "a/link"), "real")
	testutil.AssertFileContent(t, filepath.Join(home, "a/real"), "payload")
	testutil.AssertFileContent(t, filepath.Join(home, "a/link"), "payload")
}

func TestRoundTrip_OptionalEscapingLink(t *testing.T) {
	f := newFixture(t)
	outside := testutil.CreateFile(t, testutil.TempDir(t), "secret", "s")
	f.home.Link(t, ".secret", outside)

	_, err := f.engine.ToVault("data", f.items(".secret"))
	require.NoError(t, err)

	home := freshHome(t)
	_, err = f.engine.FromVault("data", itemsUnder(home, ".secret"), false)
	require.NoError(t, err)
	testutil.AssertNoEntry(t, filepath.Join(home, ".secret"))
}

func TestFromVault_UpgradeRequired(t *testing.T) {
	f := newFixture(t)
	testutil.CreateFile(t, f.vault, "x", "x")
	f.stamp(t, 2)

	_, err := f.engine.FromVault("data", f.items("x"), false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUpgradeRequired))

	_, err = f.engine.FromVault("data", nil, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUpgradeRequired))
	testutil.AssertNoEntry(t, f.home.Path("x"))
}

func TestFromVault_Legacy(t *testing.T) {
	t.Run("whole vault onto first item", func(t *testing.T) {
		f := newFixture(t)
		testutil.CreateFile(t, f.vault, "one", "1")
		testutil.CreateFile(t, f.vault, "nested/two", "2")
		// a link index is ignored on legacy vaults
		idx := datastore.LoadLinkIndex(filesystem.NewOS(), f.vault, testLayout)
		idx.Add(types.LinkRecord{Path: "restore", Target: "elsewhere", TargetPath: "elsewhere"})
		require.NoError(t, idx.Save())

		res, err := f.engine.FromVault("data", f.items("restore", "ignored"), false)
		require.NoError(t, err)
		assert.True(t, res.Legacy)

		testutil.AssertFileContent(t, f.home.Path("restore/one"), "1")
		testutil.AssertFileContent(t, f.home.Path("restore/nested/two"), "2")
		assert.False(t, testutil.SymlinkExists(t, f.home.Path("restore")))
		testutil.AssertNoEntry(t, f.home.Path("ignored"))
		testutil.AssertNoEntry(t, f.home.Path("elsewhere"))
	})

	t.Run("explicit version zero", func(t *testing.T) {
		f := newFixture(t)
		testutil.CreateFile(t, f.vault, "one", "1")
		f.stamp(t, 0)

		res, err := f.engine.FromVault("data", f.items("restore"), false)
		require.NoError(t, err)
		assert.True(t, res.Legacy)
		testutil.AssertFileContent(t, f.home.Path("restore/one"), "1")
	})

	t.Run("no items", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.engine.FromVault("data", nil, false)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoItems))
	})

	t.Run("destination cannot be created", func(t *testing.T) {
		f := newFixture(t)
		f.home.File(t, "blocker", "file")

		_, err := f.engine.FromVault("data", f.items("blocker/restore"), false)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDestinationCreateFailure))
	})
}

func TestFromVault_MissingSource(t *testing.T) {
	f := newFixture(t)
	f.stamp(t, datastore.CurrentVersion)

	_, err := f.engine.FromVault("data", []types.PathItem{required(f.items("absent")[0])}, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingSource))

	res, err := f.engine.FromVault("data", f.items("absent"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Copied)
	assert.Equal(t, 1, res.Dropped)
	testutil.AssertNoEntry(t, f.home.Path("absent"))
}

func TestFromVault_MissingLinkedSource(t *testing.T) {
	f := newFixture(t)
	f.stamp(t, datastore.CurrentVersion)
	idx := datastore.LoadLinkIndex(filesystem.NewOS(), f.vault, testLayout)
	idx.Add(types.LinkRecord{Path: ".vimrc", Target: "dotfiles/vimrc", TargetPath: "dotfiles/vimrc"})
	require.NoError(t, idx.Save())

	_, err := f.engine.FromVault("data", []types.PathItem{required(f.items(".vimrc")[0])}, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingLinkedSource))

	_, err = f.engine.FromVault("data", f.items(".vimrc"), false)
	require.NoError(t, err)
	testutil.AssertNoEntry(t, f.home.Path(".vimrc"))
}

func TestFromVault_Overwrite(t *testing.T) {
	setup := func(t *testing.T) *fixture {
		f := newFixture(t)
		f.stamp(t, datastore.CurrentVersion)
		testutil.CreateFile(t, f.vault, ".conf", "from vault")
		f.home.File(t, ".conf", "local edits")
		return f
	}

	t.Run("default on replaces", func(t *testing.T) {
		f := setup(t)
		_, err := f.engine.FromVault("data", f.items(".conf"), true)
		require.NoError(t, err)
		testutil.AssertFileContent(t, f.home.Path(".conf"), "from vault")
	})

	t.Run("default off keeps", func(t *testing.T) {
		f := setup(t)
		res, err := f.engine.FromVault("data", append(f.items(".conf"), f.items("absent")...), false)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Copied)
		assert.Equal(t, 1, res.Kept)
		assert.Equal(t, 1, res.Dropped)
		testutil.AssertFileContent(t, f.home.Path(".conf"), "local edits")
	})

	t.Run("item flag beats default", func(t *testing.T) {
		f := setup(t)
		_, err := f.engine.FromVault("data", []types.PathItem{withOverwrite(f.items(".conf")[0], true)}, false)
		require.NoError(t, err)
		testutil.AssertFileContent(t, f.home.Path(".conf"), "from vault")

		f = setup(t)
		_, err = f.engine.FromVault("data", []types.PathItem{withOverwrite(f.items(".conf")[0], false)}, true)
		require.NoError(t, err)
		testutil.AssertFileContent(t, f.home.Path(".conf"), "local edits")
	})

	t.Run("absent destination is always written", func(t *testing.T) {
		f := setup(t)
		testutil.CreateFile(t, f.vault, ".other", "new")
		_, err := f.engine.FromVault("data", f.items(".other"), false)
		require.NoError(t, err)
		testutil.AssertFileContent(t, f.home.Path(".other"), "new")
	})

	t.Run("directories always merge", func(t *testing.T) {
		f := setup(t)
		testutil.CreateFile(t, f.vault, "dir/from-vault", "v")
		f.home.File(t, "dir/local-only", "l")

		_, err := f.engine.FromVault("data", f.items("dir"), false)
		require.NoError(t, err)
		testutil.AssertFileContent(t, f.home.Path("dir/from-vault"), "v")
		testutil.AssertFileContent(t, f.home.Path("dir/local-only"), "l")
	})
}

func TestFromVault_RelinkOccupied(t *testing.T) {
	setup := func(t *testing.T) (*fixture, string) {
		f := newFixture(t)
		f.home.File(t, "a/real", "payload")
		f.home.Link(t, "a/link", "real")
		_, err := f.engine.ToVault("data", f.items("a/link"))
		require.NoError(t, err)

		home := freshHome(t)
		testutil.CreateFile(t, home, "a/link", "a plain file")
		return f, home
	}

	t.Run("kept without overwrite", func(t *testing.T) {
		f, home := setup(t)
		res, err := f.engine.FromVault("data", itemsUnder(home, "a/link"), false)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Links)
		assert.False(t, testutil.SymlinkExists(t, filepath.Join(home, "a/link")))
		testutil.AssertFileContent(t, filepath.Join(home, "a/real"), "payload")
	})

	t.Run("replaced with overwrite", func(t *testing.T) {
		f, home := setup(t)
		res, err := f.engine.FromVault("data", itemsUnder(home, "a/link"), true)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Links)
		testutil.AssertSymlink(t, filepath.Join(home, "a/link"), "real")
	})

	t.Run("identical link is left alone", func(t *testing.T) {
		f, _ := setup(t)
		home := freshHome(t)
		testutil.CreateSymlink(t, "real", filepath.Join(home, "a/link"))

		res, err := f.engine.FromVault("data", itemsUnder(home, "a/link"), false)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Links)
		testutil.AssertSymlink(t, filepath.Join(home, "a/link"), "real")
	})
}

func TestExpand(t *testing.T) {
	f := newFixture(t)
	testutil.CreateFile(t, f.vault, "present", "p")
	testutil.CreateFile(t, f.vault, "dotfiles/vimrc", "v")
	idx := datastore.LoadLinkIndex(filesystem.NewOS(), f.vault, testLayout)
	idx.Add(types.LinkRecord{Path: ".vimrc", Target: "dotfiles/vimrc", TargetPath: "dotfiles/vimrc"})

	resolved, linked := f.engine.expand(f.items("present", ".vimrc", "absent"), f.vault, idx)
	require.Len(t, resolved, 3)
	require.Len(t, linked, 1)

	assert.Equal(t, Included, resolved[0].Status)
	assert.Equal(t, f.vaultPath("present"), resolved[0].Item.Src)

	assert.Equal(t, Dropped, resolved[1].Status)
	assert.True(t, resolved[1].Item.Skip)
	assert.NoError(t, resolved[1].Err)

	assert.Equal(t, Dropped, resolved[2].Status)
	assert.Equal(t, errors.ErrMissingSource, resolved[2].Kind())

	l := linked[0]
	assert.Equal(t, Included, l.Status)
	assert.Equal(t, "dotfiles/vimrc", l.Item.Path)
	assert.Equal(t, f.home.Path("dotfiles/vimrc"), l.Item.FullPath)
	assert.Equal(t, f.vaultPath("dotfiles/vimrc"), l.Item.Src)
	assert.False(t, l.Item.Skip)
	assert.Equal(t, f.home.Path(".vimrc"), l.LinkAt)
	assert.Equal(t, "dotfiles/vimrc", l.Link.Target)
}
