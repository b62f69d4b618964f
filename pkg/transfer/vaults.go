package transfer

import (
	"sort"

	"github.com/arthur-debert/homevault/pkg/copier"
	"github.com/arthur-debert/homevault/pkg/errors"
)

// Vaults maps a data type ("bin", "data", ...) to its vault directory.
type Vaults map[string]string

// Types returns the registered data types in sorted order.
func (v Vaults) Types() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve returns the vault directory registered for dataType. It must be
// an existing directory.
func (v Vaults) Resolve(dataType string, c copier.Service) (string, error) {
	dir, ok := v[dataType]
	if !ok || dir == "" {
		return "", errors.Newf(errors.ErrUnknownDataType, "unknown data type %q", dataType).
			WithDetail("known", v.Types())
	}
	if !c.IsDir(dir) {
		return "", errors.Newf(errors.ErrVaultDirMissing, "vault directory for %q does not exist: %s", dataType, dir).
			WithDetail("path", dir)
	}
	return dir, nil
}
