package transfer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/types"
	"github.com/go-viper/mapstructure/v2"
)

// itemSpec is the structured form of a context entry.
type itemSpec struct {
	Path      string `mapstructure:"path"`
	Required  bool   `mapstructure:"required"`
	Overwrite *bool  `mapstructure:"overwrite"`
}

// Resolve turns one context entry, a bare path string or a record with
// path/required/overwrite, into a PathItem anchored at home.
func Resolve(entry interface{}, home string) (types.PathItem, error) {
	var spec itemSpec

	switch v := entry.(type) {
	case string:
		spec.Path = v
	case map[string]interface{}, map[interface{}]interface{}:
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &spec,
		})
		if err != nil {
			return types.PathItem{}, errors.Wrap(err, errors.ErrInternal, "failed to create item decoder")
		}
		if err := decoder.Decode(v); err != nil {
			return types.PathItem{}, errors.Wrapf(err, errors.ErrInvalidPathSpec, "invalid path record %v", v)
		}
	default:
		return types.PathItem{}, errors.Newf(errors.ErrInvalidPathSpec,
			"path entry must be a string or a record, got %T", entry).
			WithDetail("entry", fmt.Sprintf("%v", entry))
	}

	path := strings.TrimSpace(spec.Path)
	if path == "" {
		return types.PathItem{}, errors.New(errors.ErrInvalidPathSpec, "path entry has an empty path").
			WithDetail("entry", fmt.Sprintf("%v", entry))
	}

	item := types.NewPathItem(home, filepath.Clean(path))
	item.Required = spec.Required
	item.Overwrite = spec.Overwrite
	return item, nil
}

// ResolveList resolves the value of one data type: either a single path
// string or a list of entries.
func ResolveList(value interface{}, home string) ([]types.PathItem, error) {
	var entries []interface{}

	switch v := value.(type) {
	case string:
		entries = []interface{}{v}
	case []interface{}:
		entries = v
	case []string:
		for _, s := range v {
			entries = append(entries, s)
		}
	case []map[string]interface{}:
		for _, m := range v {
			entries = append(entries, m)
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidPathSpec,
			"paths must be a string or a list, got %T", value)
	}

	items := make([]types.PathItem, 0, len(entries))
	for _, entry := range entries {
		item, err := Resolve(entry, home)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
