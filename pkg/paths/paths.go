package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/homevault/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for homevault
	EnvConfigDir = "HOMEVAULT_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for homevault
	EnvStateDir = "HOMEVAULT_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for homevault-specific files
	AppDirName = "homevault"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "homevault.log"
)

// Paths provides the application directories
type Paths interface {
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	LogFilePath() string
}

type paths struct {
	xdgConfig string
	xdgState  string
}

// New creates a Paths instance, respecting environment overrides.
func New() Paths {
	p := &paths{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = ExpandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}

// NormalizePath expands home, makes the path absolute and cleans it.
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidPathSpec, "empty path")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPathSpec, "failed to get absolute path for %s", path)
	}

	return filepath.Clean(abs), nil
}

// Canonicalize resolves every symlink in path and returns the real
// absolute location. It fails if any component does not exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// IsDescendant reports whether path lies inside root (root itself included).
// Both paths are compared lexically and should already be canonical.
func IsDescendant(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Relative returns target relative to base.
func Relative(target, base string) (string, error) {
	return filepath.Rel(base, target)
}

// ResolveHome turns a configured home directory into its canonical form.
// An empty value falls back to the current user's home.
func ResolveHome(dir string) (string, error) {
	if dir == "" {
		dir = "~"
	}

	normalized, err := NormalizePath(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrHomeDirMissing, "invalid home directory %q", dir)
	}

	canonical, err := Canonicalize(normalized)
	if err != nil {
		return "", errors.Newf(errors.ErrHomeDirMissing, "home directory does not exist: %s", normalized).
			WithDetail("path", normalized)
	}

	info, err := os.Stat(canonical)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrHomeDirMissing, "home directory is not a directory: %s", canonical).
			WithDetail("path", canonical)
	}

	return canonical, nil
}
