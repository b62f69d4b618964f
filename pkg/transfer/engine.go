package transfer

import (
	"github.com/arthur-debert/homevault/pkg/copier"
	"github.com/arthur-debert/homevault/pkg/datastore"
	"github.com/arthur-debert/homevault/pkg/filesystem"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures an Engine. Zero values fall back to the OS
// implementations, the default layout and the current format version.
type Options struct {
	Vaults  Vaults
	Layout  datastore.Layout
	Version uint64
	Copier  copier.Service
	FS      types.FS
}

// Engine runs the export and import pipelines against a set of vaults.
type Engine struct {
	vaults  Vaults
	layout  datastore.Layout
	version uint64
	copier  copier.Service
	fs      types.FS
	logger  zerolog.Logger
}

// Result summarizes one pipeline run. Dropped counts items that were
// rejected or failed to copy; Kept counts existing files an import left in
// place because overwrite was off.
type Result struct {
	DataType string
	Vault    string
	Copied   int
	Dropped  int
	Kept     int
	Links    int
	Legacy   bool
}

// New creates an Engine.
func New(opts Options) *Engine {
	e := &Engine{
		vaults:  opts.Vaults,
		layout:  opts.Layout,
		version: opts.Version,
		copier:  opts.Copier,
		fs:      opts.FS,
		logger:  logging.GetLogger("transfer"),
	}
	if e.vaults == nil {
		e.vaults = Vaults{}
	}
	if e.layout.Prefix == "" {
		e.layout = datastore.DefaultLayout()
	}
	if e.version == 0 {
		e.version = datastore.CurrentVersion
	}
	if e.copier == nil {
		e.copier = copier.New()
	}
	if e.fs == nil {
		e.fs = filesystem.NewOS()
	}
	return e
}

// Vaults returns the registered vaults.
func (e *Engine) Vaults() Vaults {
	return e.vaults
}

func (e *Engine) versionGate(vault string) *datastore.VersionGate {
	return datastore.NewVersionGate(e.fs, vault, e.layout, e.version)
}
