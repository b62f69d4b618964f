package transfer

import (
	"path/filepath"

	"github.com/arthur-debert/homevault/pkg/datastore"
	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/types"
)

// FromVault restores items of dataType from its vault. overwrite is the
// policy for items that carry no overwrite flag of their own.
func (e *Engine) FromVault(dataType string, items []types.PathItem, overwrite bool) (*Result, error) {
	defer logging.LogOperationStart(e.logger.With().Str("dataType", dataType).Int("items", len(items)).Logger(), "import")()

	// Step 1: Locate the vault
	vault, err := e.vaults.Resolve(dataType, e.copier)
	if err != nil {
		return nil, err
	}
	result := &Result{DataType: dataType, Vault: vault}

	// Step 2: Load the link index
	index := datastore.LoadLinkIndex(e.fs, vault, e.layout)

	// Step 3: Check the vault format
	state, err := e.versionGate(vault).Require()
	if err != nil {
		return nil, err
	}
	if state == datastore.VersionOutdated {
		result.Legacy = true
		if err := e.legacyRestore(vault, items); err != nil {
			return nil, err
		}
		return result, nil
	}

	// Step 4: Locate sources, following recorded links
	resolved, linked := e.expand(items, vault, index)
	if err := firstFailure(resolved); err != nil {
		return nil, err
	}

	// Step 5: Recreate links, then fold the linked items in
	relinked, err := e.relink(linked, overwrite)
	if err != nil {
		return nil, err
	}
	result.Links = relinked

	kept := survivors(resolved, e.logger, "expand")
	work := append(kept, linked...)

	// Step 6: Copy back under home
	copied, unchanged, err := e.restore(work, overwrite)
	if err != nil {
		return nil, err
	}
	result.Copied = copied
	result.Kept = unchanged
	// expand yields one outcome per item: kept, folded into linked, or rejected
	rejected := len(items) - len(kept) - len(linked)
	result.Dropped = rejected + len(work) - copied - unchanged

	e.logger.Info().
		Str("dataType", dataType).
		Str("vault", vault).
		Int("copied", result.Copied).
		Int("dropped", result.Dropped).
		Int("kept", result.Kept).
		Int("links", result.Links).
		Msg("Import completed")

	return result, nil
}

// legacyRestore handles vaults written before the link index existed: the
// whole vault is update-copied onto the first item's destination.
func (e *Engine) legacyRestore(vault string, items []types.PathItem) error {
	if len(items) == 0 {
		return errors.Newf(errors.ErrNoItems, "legacy vault %s needs at least one item to restore into", vault)
	}

	dest := items[0].FullPath
	if err := e.copier.MakeDirs(dest); err != nil {
		return errors.Wrapf(err, errors.ErrDestinationCreateFailure, "cannot create %s", dest)
	}

	e.logger.Info().Str("vault", vault).Str("dest", dest).Msg("Restoring legacy vault as a single tree")
	if err := e.copier.CopyTree(vault, dest); err != nil {
		e.logger.Warn().Err(err).Str("vault", vault).Msg("Legacy restore failed")
	}
	return nil
}

// expand attaches vault sources to items. Items missing from the vault are
// looked up in the link index; a recorded link yields a linked item for the
// link target, returned separately. The resolved list holds one outcome per
// input item, in order.
func (e *Engine) expand(items []types.PathItem, vault string, index *datastore.LinkIndex) (resolved, linked []Outcome) {
	resolved = make([]Outcome, 0, len(items))

	for _, item := range items {
		src := filepath.Join(vault, item.Path)
		if e.copier.Exists(src) {
			item.Src = src
			resolved = append(resolved, include(item))
			continue
		}

		item.Skip = true
		rec, ok := index.Get(item.Path)
		if !ok {
			resolved = append(resolved, reject(item, errors.Newf(errors.ErrMissingSource,
				"%s is not in the vault", item.Path).WithDetail("src", src)))
			continue
		}

		linkedItem := item.Rebase(rec.TargetPath)
		linkedItem.Src = filepath.Join(vault, rec.TargetPath)
		if !e.copier.Exists(linkedItem.Src) {
			resolved = append(resolved, reject(item, errors.Newf(errors.ErrMissingLinkedSource,
				"link target %s of %s is not in the vault", rec.TargetPath, item.Path).
				WithDetail("src", linkedItem.Src)))
			continue
		}

		o := include(linkedItem)
		o.Link = &rec
		o.LinkAt = item.FullPath
		linked = append(linked, o)

		resolved = append(resolved, Outcome{Item: item, Status: Dropped})
	}

	return resolved, linked
}

// relink recreates the recorded symlinks of linked outcomes and returns
// how many links are in place afterwards.
func (e *Engine) relink(linked []Outcome, overwrite bool) (int, error) {
	count := 0

	for _, o := range linked {
		parent := filepath.Dir(o.LinkAt)
		if err := e.copier.MakeDirs(parent); err != nil {
			rejected := reject(o.Item, errors.Wrapf(err, errors.ErrDestinationCreateFailure,
				"cannot create %s", parent))
			if rejected.Status == Failed {
				return count, rejected.Err
			}
			e.logger.Debug().Err(err).Str("link", o.LinkAt).Msg("Cannot create link directory")
			continue
		}

		if e.createLink(o.Link.Target, o.LinkAt, o.Item.OverwriteOr(overwrite)) {
			count++
		}
	}

	return count, nil
}

// createLink makes link point at target. An identical link is left alone;
// any other existing entry is replaced only when overwrite is set.
func (e *Engine) createLink(target, link string, overwrite bool) bool {
	logger := e.logger.With().Str("link", link).Str("target", target).Logger()

	if current, err := e.fs.Readlink(link); err == nil && current == target {
		logger.Debug().Msg("Link already in place")
		return true
	}

	if _, err := e.fs.Lstat(link); err == nil {
		if !overwrite {
			logger.Warn().Msg("Link location is occupied, leaving it")
			return false
		}
		if err := e.fs.Remove(link); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove existing entry at link location")
			return false
		}
	}

	if err := e.fs.Symlink(target, link); err != nil {
		logger.Warn().Err(err).Msg("Failed to create symlink")
		return false
	}

	logger.Debug().Msg("Recreated symlink")
	return true
}

// restore copies each outcome's Src onto its FullPath. It returns how many
// items were copied and how many existing files were left in place because
// overwrite is off. Directories always merge.
func (e *Engine) restore(outcomes []Outcome, overwrite bool) (int, int, error) {
	copied, unchanged := 0, 0

	for _, o := range outcomes {
		item := o.Item
		logger := e.logger.With().Str("path", item.Path).Str("src", item.Src).Logger()

		parent := filepath.Dir(item.FullPath)
		if err := e.copier.MakeDirs(parent); err != nil {
			rejected := reject(item, errors.Wrapf(err, errors.ErrDestinationCreateFailure,
				"cannot create %s", parent))
			if rejected.Status == Failed {
				return copied, unchanged, rejected.Err
			}
			survivors([]Outcome{rejected}, e.logger, "restore")
			continue
		}

		switch {
		case e.copier.IsDir(item.Src):
			if err := e.copier.CopyTree(item.Src, item.FullPath); err != nil {
				logger.Warn().Err(err).Msg("Copy failed")
				continue
			}
		case e.copier.IsFile(item.Src):
			if _, err := e.fs.Lstat(item.FullPath); err == nil {
				if !item.OverwriteOr(overwrite) {
					logger.Debug().Msg("Destination exists and overwrite is off, keeping it")
					unchanged++
					continue
				}
				if err := e.fs.Remove(item.FullPath); err != nil {
					logger.Warn().Err(err).Msg("Failed to remove existing destination")
					continue
				}
			}
			if err := e.copier.CopyFile(item.Src, item.FullPath); err != nil {
				logger.Warn().Err(err).Msg("Copy failed")
				continue
			}
		default:
			logger.Info().Msg("Source is neither a file nor a directory, nothing to do")
			continue
		}

		copied++
	}

	return copied, unchanged, nil
}
