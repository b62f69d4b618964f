package types

import (
	"fmt"
	"path/filepath"
)

// PathItem is one logical transfer unit: a path relative to a root (the home
// directory) together with the flags that decide how failures are handled.
//
// FullPath always equals filepath.Join(RootPath, Path) once the item has been
// resolved; use NewPathItem or Rebase rather than setting the fields apart.
type PathItem struct {
	Path     string `yaml:"path"`
	FullPath string `yaml:"full_path"`
	RootPath string `yaml:"root_path"`

	// Required items abort the whole operation on any failure to locate or
	// produce them. Optional items are dropped instead.
	Required bool `yaml:"required"`

	// Overwrite overrides the invocation's default overwrite policy when set.
	Overwrite *bool `yaml:"overwrite,omitempty"`

	// Skip excludes the item from copying while keeping it for bookkeeping.
	Skip bool `yaml:"skip,omitempty"`

	// Src is the resolved vault source (import only).
	Src string `yaml:"src,omitempty"`
}

// NewPathItem anchors path under root.
func NewPathItem(root, path string) PathItem {
	return PathItem{
		Path:     path,
		FullPath: filepath.Join(root, path),
		RootPath: root,
	}
}

// Rebase returns a copy of the item pointing at another path under the same
// root. Flags are carried over; Skip and Src are reset.
func (p PathItem) Rebase(path string) PathItem {
	p.Path = path
	p.FullPath = filepath.Join(p.RootPath, path)
	p.Skip = false
	p.Src = ""
	return p
}

// OverwriteOr resolves the item-level overwrite flag against a default.
func (p PathItem) OverwriteOr(def bool) bool {
	if p.Overwrite != nil {
		return *p.Overwrite
	}
	return def
}

func (p PathItem) String() string {
	flags := ""
	if p.Required {
		flags += " required"
	}
	if p.Skip {
		flags += " skip"
	}
	return fmt.Sprintf("%s (%s)%s", p.Path, p.FullPath, flags)
}
