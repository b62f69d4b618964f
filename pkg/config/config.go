package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/homevault/pkg/datastore"
	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "HOMEVAULT_"

// Config is the resolved application configuration
type Config struct {
	Home    string            `koanf:"home"`
	AppName string            `koanf:"app_name"`
	Layout  LayoutConfig      `koanf:"layout"`
	Vaults  map[string]string `koanf:"vaults"`
}

// LayoutConfig names the vault metadata files
type LayoutConfig struct {
	Prefix string `koanf:"prefix"`
}

// DatastoreLayout converts the layout section.
func (c *Config) DatastoreLayout() datastore.Layout {
	return datastore.Layout{Prefix: c.Layout.Prefix}
}

// LoadOptions select the optional layers
type LoadOptions struct {
	// ConfigFile replaces the XDG user config file. It must exist.
	ConfigFile string

	// Flags holds command-line values keyed by config path, e.g.
	// "home" or "vaults.bin". Empty values are ignored.
	Flags map[string]interface{}
}

// Load builds the configuration from embedded defaults, the user config
// file, HOMEVAULT_* environment variables and flags, in that order.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Load the user config file
	configPath := opts.ConfigFile
	if configPath == "" {
		configPath = paths.New().ConfigFilePath()
		if _, err := os.Stat(configPath); err != nil {
			configPath = ""
		}
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file not found: %s", configPath)
		}
		if err := k.Load(file.Provider(configPath), parserFor(configPath, "toml")); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath)
		}
	}

	// 3. Load env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Load flags
	if flags := nonEmpty(opts.Flags); len(flags) > 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	postProcess(&cfg)
	return &cfg, nil
}

// envKey maps HOMEVAULT_VAULTS_BIN to vaults.bin and HOMEVAULT_APP_NAME
// to app_name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"vaults_", "layout_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

func nonEmpty(flags map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(flags))
	for k, v := range flags {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

func postProcess(cfg *Config) {
	cfg.Home = paths.ExpandHome(cfg.Home)
	if cfg.Layout.Prefix == "" {
		cfg.Layout.Prefix = datastore.DefaultPrefix
	}
	if cfg.Vaults == nil {
		cfg.Vaults = map[string]string{}
	}
	for dataType, dir := range cfg.Vaults {
		if dir == "" {
			delete(cfg.Vaults, dataType)
			continue
		}
		cfg.Vaults[dataType] = paths.ExpandHome(dir)
	}
}

// parserFor picks a koanf parser by file extension. Paths without an
// extension use def. Anything unrecognised is read as TOML.
func parserFor(path, def string) koanf.Parser {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = def
	}
	switch format {
	case "yaml", "yml":
		return yaml.Parser()
	case "json":
		return json.Parser()
	}
	return toml.Parser()
}
