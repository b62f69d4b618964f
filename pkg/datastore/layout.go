package datastore

import "path/filepath"

const (
	// DefaultPrefix is the hidden-file prefix used for vault metadata
	DefaultPrefix = ".f8b52b7481393a3e6ade051ecfb549fa"

	// CurrentVersion is the vault format written by export
	CurrentVersion = 1

	linkIndexSuffix = ".links"
	versionSuffix   = ".unit.version"
)

// Layout names the metadata files inside a vault directory.
type Layout struct {
	Prefix string
}

// DefaultLayout returns the layout using DefaultPrefix.
func DefaultLayout() Layout {
	return Layout{Prefix: DefaultPrefix}
}

func (l Layout) prefix() string {
	if l.Prefix == "" {
		return DefaultPrefix
	}
	return l.Prefix
}

// LinkIndexName is the file name of the link index.
func (l Layout) LinkIndexName() string {
	return l.prefix() + linkIndexSuffix
}

// VersionName is the file name of the version marker.
func (l Layout) VersionName() string {
	return l.prefix() + versionSuffix
}

// LinkIndexPath returns the link index location inside vaultDir.
func (l Layout) LinkIndexPath(vaultDir string) string {
	return filepath.Join(vaultDir, l.LinkIndexName())
}

// VersionPath returns the version marker location inside vaultDir.
func (l Layout) VersionPath(vaultDir string) string {
	return filepath.Join(vaultDir, l.VersionName())
}

// IsMetadata reports whether name is one of the layout's metadata files.
func (l Layout) IsMetadata(name string) bool {
	return name == l.LinkIndexName() || name == l.VersionName()
}
