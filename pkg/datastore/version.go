package datastore

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/types"
	"github.com/rs/zerolog"
)

// VersionState classifies a stored version against the current one.
type VersionState int

const (
	// VersionOutdated covers an absent marker (0) and any older format.
	VersionOutdated VersionState = iota
	VersionCurrent
	VersionFuture
)

func (s VersionState) String() string {
	switch s {
	case VersionOutdated:
		return "outdated"
	case VersionCurrent:
		return "current"
	case VersionFuture:
		return "future"
	}
	return "unknown"
}

// VersionGate reads and stamps the format version of one vault directory.
type VersionGate struct {
	fs      types.FS
	path    string
	current uint64
	logger  zerolog.Logger
}

// NewVersionGate creates a gate for vaultDir that treats current as the
// supported format.
func NewVersionGate(fs types.FS, vaultDir string, layout Layout, current uint64) *VersionGate {
	return &VersionGate{
		fs:      fs,
		path:    layout.VersionPath(vaultDir),
		current: current,
		logger:  logging.GetLogger("datastore.version"),
	}
}

// Current returns the format version this gate writes.
func (g *VersionGate) Current() uint64 {
	return g.current
}

// Read returns the stored version, or 0 when the marker is missing or
// unparsable.
func (g *VersionGate) Read() uint64 {
	data, err := g.fs.ReadFile(g.path)
	if err != nil {
		return 0
	}

	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		g.logger.Debug().Str("path", g.path).Str("content", string(data)).Msg("Unparsable version marker")
		return 0
	}
	return v
}

// Write stamps the current version.
func (g *VersionGate) Write() error {
	content := strconv.FormatUint(g.current, 10)
	if err := g.fs.WriteFile(g.path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to write version marker %s", g.path)
	}
	return nil
}

// Check reads the stored version and classifies it.
func (g *VersionGate) Check() (VersionState, uint64) {
	v := g.Read()
	switch {
	case v > g.current:
		return VersionFuture, v
	case v == g.current:
		return VersionCurrent, v
	default:
		return VersionOutdated, v
	}
}

// Require fails with ErrUpgradeRequired when the vault was written by a
// newer format. Otherwise it returns the state.
func (g *VersionGate) Require() (VersionState, error) {
	state, v := g.Check()
	if state == VersionFuture {
		return state, errors.Newf(errors.ErrUpgradeRequired,
			"vault format %d is newer than supported format %d", v, g.current).
			WithDetail("path", g.path).
			WithDetail("version", v)
	}
	g.logger.Debug().Str("path", g.path).Uint64("version", v).Str("state", state.String()).Msg("Checked vault version")
	return state, nil
}
