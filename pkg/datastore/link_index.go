package datastore

import (
	"encoding/json"
	"sort"

	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/types"
	"github.com/rs/zerolog"
)

// LinkIndex maps the relative path of an exported symlink to its record.
// It is loaded once per pipeline run and written back at most once.
type LinkIndex struct {
	fs      types.FS
	path    string
	records map[string]types.LinkRecord
	logger  zerolog.Logger
}

// LoadLinkIndex reads the link index of vaultDir. Any read or decode
// failure yields an empty index.
func LoadLinkIndex(fs types.FS, vaultDir string, layout Layout) *LinkIndex {
	idx := &LinkIndex{
		fs:      fs,
		path:    layout.LinkIndexPath(vaultDir),
		records: make(map[string]types.LinkRecord),
		logger:  logging.GetLogger("datastore.links"),
	}

	data, err := fs.ReadFile(idx.path)
	if err != nil {
		idx.logger.Debug().Str("path", idx.path).Msg("No link index")
		return idx
	}

	var raw map[string]types.LinkRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		idx.logger.Warn().Err(err).Str("path", idx.path).Msg("Ignoring unreadable link index")
		return idx
	}

	for path, rec := range raw {
		rec.Path = path
		idx.records[path] = rec
	}

	idx.logger.Debug().Str("path", idx.path).Int("links", len(idx.records)).Msg("Loaded link index")
	return idx
}

// Add upserts rec under rec.Path.
func (idx *LinkIndex) Add(rec types.LinkRecord) {
	idx.records[rec.Path] = rec
}

// Get returns the record stored for path.
func (idx *LinkIndex) Get(path string) (types.LinkRecord, bool) {
	rec, ok := idx.records[path]
	return rec, ok
}

// Len returns the number of records.
func (idx *LinkIndex) Len() int {
	return len(idx.records)
}

// Paths returns the recorded link paths in sorted order.
func (idx *LinkIndex) Paths() []string {
	keys := make([]string, 0, len(idx.records))
	for k := range idx.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the index back. An empty index writes nothing.
func (idx *LinkIndex) Save() error {
	if len(idx.records) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(idx.records, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode link index")
	}

	if err := idx.fs.WriteFile(idx.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to write link index %s", idx.path)
	}

	idx.logger.Debug().Str("path", idx.path).Int("links", len(idx.records)).Msg("Saved link index")
	return nil
}
