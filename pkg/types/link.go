package types

// LinkRecord describes a symbolic link found under home during export.
// Path is the link's own path relative to home and is the index key.
type LinkRecord struct {
	Path string `json:"-"`

	// Target is the raw link target as stored on disk, relative or absolute.
	Target string `json:"target"`

	// TargetPath is the canonical target relative to home.
	TargetPath string `json:"target_path"`
}

// IsZero reports whether the record is the empty lookup result.
func (r LinkRecord) IsZero() bool {
	return r.Target == "" && r.TargetPath == ""
}
