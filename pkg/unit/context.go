package unit

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/transfer"
	"github.com/arthur-debert/homevault/pkg/types"
	"github.com/go-viper/mapstructure/v2"
)

const (
	contextHome    = "home"
	contextOptions = "options"
)

// ContextOptions are the options section of a context.
type ContextOptions struct {
	Overwrite *bool `mapstructure:"overwrite"`
}

// Group is the resolved item list of one data type.
type Group struct {
	DataType string           `yaml:"data_type"`
	Items    []types.PathItem `yaml:"items"`
}

// Context is a parsed invocation context.
type Context struct {
	Groups []Group

	// HomeOptions is the options entry inside the home mapping. It applies
	// to this call only and wins over Options.
	HomeOptions ContextOptions
	Options     ContextOptions
}

// ParseContext validates raw and resolves every data type's items under
// home. Groups are sorted by data type.
func ParseContext(raw map[string]interface{}, home string) (*Context, error) {
	ctx := &Context{}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		switch key {
		case contextHome:
			if err := parseHome(value, home, ctx); err != nil {
				return nil, err
			}
		case contextOptions:
			if err := decodeOptions(value, &ctx.Options); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Newf(errors.ErrUnknownContextItem, "unknown context item %q", key).
				WithDetail("key", key)
		}
	}

	return ctx, nil
}

// parseHome resolves the home mapping into ctx. Its options key holds
// per-call options; every other key is a data type.
func parseHome(value interface{}, home string, ctx *Context) error {
	entries, ok := asMap(value)
	if !ok {
		return errors.Newf(errors.ErrInvalidPathSpec,
			"%q must map data types to paths, got %T", contextHome, value)
	}

	dataTypes := make([]string, 0, len(entries))
	for k := range entries {
		if k == contextOptions {
			if err := decodeOptions(entries[k], &ctx.HomeOptions); err != nil {
				return err
			}
			continue
		}
		dataTypes = append(dataTypes, k)
	}
	sort.Strings(dataTypes)

	groups := make([]Group, 0, len(dataTypes))
	for _, dataType := range dataTypes {
		items, err := transfer.ResolveList(entries[dataType], home)
		if err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "data type %q", dataType)
		}
		groups = append(groups, Group{DataType: dataType, Items: items})
	}
	ctx.Groups = groups
	return nil
}

func decodeOptions(value interface{}, opts *ContextOptions) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           opts,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create options decoder")
	}
	if err := decoder.Decode(value); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid %q section", contextOptions)
	}
	return nil
}

func asMap(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
		return m, true
	}
	return nil, false
}
