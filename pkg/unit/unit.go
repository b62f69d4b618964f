package unit

import (
	"github.com/arthur-debert/homevault/pkg/datastore"
	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/paths"
	"github.com/arthur-debert/homevault/pkg/transfer"
	"github.com/rs/zerolog"
)

// Action selects the pipeline.
type Action string

const (
	ActionExport Action = "export"
	ActionImport Action = "import"
)

// ParseAction validates an action name.
func ParseAction(name string) (Action, error) {
	switch Action(name) {
	case ActionExport, ActionImport:
		return Action(name), nil
	}
	return "", errors.Newf(errors.ErrUnknownAction, "unknown action %q", name).
		WithDetail("valid", []string{string(ActionExport), string(ActionImport)})
}

// Config configures an Operation.
type Config struct {
	// Home is the home directory; empty means the current user's.
	Home   string
	Vaults transfer.Vaults
	Layout datastore.Layout

	// Overwrite is the per-invocation default, consulted after the item
	// flag and before the context's options.
	Overwrite *bool

	// AppName only labels log output.
	AppName string
}

// Operation runs one action over a context.
type Operation struct {
	home      string
	overwrite *bool
	engine    *transfer.Engine
	logger    zerolog.Logger
}

// New resolves the home directory and prepares the transfer engine.
func New(cfg Config) (*Operation, error) {
	home, err := paths.ResolveHome(cfg.Home)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("unit")
	if cfg.AppName != "" {
		logger = logger.With().Str("app", cfg.AppName).Logger()
	}

	return &Operation{
		home:      home,
		overwrite: cfg.Overwrite,
		engine: transfer.New(transfer.Options{
			Vaults: cfg.Vaults,
			Layout: cfg.Layout,
		}),
		logger: logger,
	}, nil
}

// Home returns the canonical home directory.
func (o *Operation) Home() string {
	return o.home
}

// Plan parses the context without touching the filesystem.
func (o *Operation) Plan(raw map[string]interface{}) (*Context, error) {
	return ParseContext(raw, o.home)
}

// Execute runs action for every data type of the context, in sorted
// order, stopping at the first error.
func (o *Operation) Execute(action Action, raw map[string]interface{}) ([]*transfer.Result, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return nil, err
	}

	ctx, err := ParseContext(raw, o.home)
	if err != nil {
		return nil, err
	}

	overwrite := o.defaultOverwrite(ctx)
	o.logger.Debug().
		Str("action", string(action)).
		Str("home", o.home).
		Int("dataTypes", len(ctx.Groups)).
		Bool("overwrite", overwrite).
		Msg("Executing")

	results := make([]*transfer.Result, 0, len(ctx.Groups))
	for _, g := range ctx.Groups {
		var (
			res *transfer.Result
			err error
		)
		switch action {
		case ActionExport:
			res, err = o.engine.ToVault(g.DataType, g.Items)
		case ActionImport:
			res, err = o.engine.FromVault(g.DataType, g.Items, overwrite)
		}
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

// defaultOverwrite picks the invocation option, then the home options of
// the context, then its top-level options, then false.
func (o *Operation) defaultOverwrite(ctx *Context) bool {
	for _, v := range []*bool{o.overwrite, ctx.HomeOptions.Overwrite, ctx.Options.Overwrite} {
		if v != nil {
			return *v
		}
	}
	return false
}
