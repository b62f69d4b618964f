package transfer

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/homevault/pkg/datastore"
	"github.com/arthur-debert/homevault/pkg/filesystem"
	"github.com/arthur-debert/homevault/pkg/testutil"
	"github.com/arthur-debert/homevault/pkg/types"
	"github.com/stretchr/testify/require"
)

var testLayout = datastore.Layout{Prefix: ".hv"}

// fixture is a home, a vault root with a "data" vault, and an engine.
type fixture struct {
	home   *testutil.Home
	vault  string
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	h := testutil.NewHome(t)
	vault := testutil.CreateDir(t, h.Vault, "data")
	return &fixture{
		home:  h,
		vault: vault,
		engine: New(Options{
			Vaults: Vaults{"data": vault},
			Layout: testLayout,
		}),
	}
}

// items anchors paths under the fixture's home.
func (f *fixture) items(paths ...string) []types.PathItem {
	return itemsUnder(f.home.Dir, paths...)
}

func itemsUnder(root string, paths ...string) []types.PathItem {
	items := make([]types.PathItem, 0, len(paths))
	for _, p := range paths {
		items = append(items, types.NewPathItem(root, p))
	}
	return items
}

func required(item types.PathItem) types.PathItem {
	item.Required = true
	return item
}

func withOverwrite(item types.PathItem, v bool) types.PathItem {
	item.Overwrite = &v
	return item
}

func (f *fixture) vaultPath(rel string) string {
	return filepath.Join(f.vault, rel)
}

// stamp writes version v into the fixture's vault.
func (f *fixture) stamp(t *testing.T, v uint64) {
	t.Helper()
	require.NoError(t, datastore.NewVersionGate(filesystem.NewOS(), f.vault, testLayout, v).Write())
}

// freshHome returns another empty home to restore into.
func freshHome(t *testing.T) string {
	t.Helper()
	return testutil.CreateDir(t, testutil.TempDir(t), "home")
}
