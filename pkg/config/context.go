package config

import (
	"io"
	"os"

	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// StdinPath selects standard input as the context source
const StdinPath = "-"

// LoadContext reads an invocation context. The format follows the file
// extension (.toml, .yaml/.yml, .json); standard input and extensionless
// files are read as format, defaulting to JSON.
func LoadContext(path, format string, stdin io.Reader) (map[string]interface{}, error) {
	if path == "" {
		return nil, errors.New(errors.ErrConfigLoad, "no context file given")
	}
	if format == "" {
		format = "json"
	}

	// Paths may legitimately contain dots, so keys are never split.
	k := koanf.NewWithConf(koanf.Conf{Delim: "\x00"})

	var provider koanf.Provider
	if path == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read context from stdin")
		}
		provider = &rawBytesProvider{bytes: data}
		path = "stdin." + format
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "context file not found: %s", path)
		}
		provider = file.Provider(path)
	}

	if err := k.Load(provider, parserFor(path, format)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load context from %s", path).
			WithDetail("path", path)
	}

	return k.Raw(), nil
}
