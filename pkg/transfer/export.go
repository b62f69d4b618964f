package transfer

import (
	"path/filepath"

	"github.com/arthur-debert/homevault/pkg/datastore"
	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/paths"
	"github.com/arthur-debert/homevault/pkg/types"
)

// ToVault copies items of dataType from home into its vault directory.
func (e *Engine) ToVault(dataType string, items []types.PathItem) (*Result, error) {
	defer logging.LogOperationStart(e.logger.With().Str("dataType", dataType).Int("items", len(items)).Logger(), "export")()

	// Step 1: Locate the vault
	vault, err := e.vaults.Resolve(dataType, e.copier)
	if err != nil {
		return nil, err
	}
	result := &Result{DataType: dataType, Vault: vault}

	// Step 2: Load the link index
	index := datastore.LoadLinkIndex(e.fs, vault, e.layout)

	// Step 3: Replace symlinks by their targets
	outcomes := e.externalizeLinks(items)
	if err := firstFailure(outcomes); err != nil {
		return nil, err
	}
	for _, o := range outcomes {
		if o.Status == Included && o.Link != nil {
			index.Add(*o.Link)
			result.Links++
		}
	}

	// Step 4: Drop what does not exist
	outcomes = e.filterExisting(outcomes)
	if err := firstFailure(outcomes); err != nil {
		return nil, err
	}
	kept := survivors(outcomes, e.logger, "filter")
	result.Dropped = len(items) - len(kept)

	// Step 5: Copy into the vault
	copied, err := e.materialize(kept, vault)
	if err != nil {
		return nil, err
	}
	result.Copied = copied
	result.Dropped += len(kept) - copied

	// Step 6: Persist metadata
	if err := index.Save(); err != nil {
		return nil, err
	}
	if err := e.versionGate(vault).Write(); err != nil {
		return nil, err
	}

	e.logger.Info().
		Str("dataType", dataType).
		Str("vault", vault).
		Int("copied", result.Copied).
		Int("dropped", result.Dropped).
		Int("links", result.Links).
		Msg("Export completed")

	return result, nil
}

// externalizeLinks rewrites symlink items to point at their canonical
// target and attaches the link record to store. A link whose target lies
// outside the item's root, or cannot be resolved, is rejected.
func (e *Engine) externalizeLinks(items []types.PathItem) []Outcome {
	outcomes := make([]Outcome, 0, len(items))

	for _, item := range items {
		if !e.copier.IsSymlink(item.FullPath) {
			outcomes = append(outcomes, include(item))
			continue
		}

		raw, err := e.copier.ReadLink(item.FullPath)
		if err != nil {
			outcomes = append(outcomes, reject(item, errors.Wrapf(err, errors.ErrSymlinkEscapesRoot,
				"cannot read symlink %s", item.FullPath)))
			continue
		}

		canonical, err := e.copier.Canonicalize(item.FullPath)
		if err != nil || canonical == item.RootPath || !paths.IsDescendant(canonical, item.RootPath) {
			outcomes = append(outcomes, reject(item, errors.Newf(errors.ErrSymlinkEscapesRoot,
				"symlink %s points outside %s", item.FullPath, item.RootPath).
				WithDetail("target", raw)))
			continue
		}

		targetPath, err := e.copier.RelativePath(canonical, item.RootPath)
		if err != nil {
			outcomes = append(outcomes, reject(item, errors.Wrapf(err, errors.ErrSymlinkEscapesRoot,
				"cannot relate %s to %s", canonical, item.RootPath)))
			continue
		}

		e.logger.Debug().
			Str("path", item.Path).
			Str("target", raw).
			Str("targetPath", targetPath).
			Msg("Externalizing symlink")

		o := include(item.Rebase(targetPath))
		o.Link = &types.LinkRecord{Path: item.Path, Target: raw, TargetPath: targetPath}
		outcomes = append(outcomes, o)
	}

	return outcomes
}

// filterExisting rejects included items whose source is missing.
func (e *Engine) filterExisting(outcomes []Outcome) []Outcome {
	filtered := make([]Outcome, 0, len(outcomes))

	for _, o := range outcomes {
		if o.Status != Included || o.Item.Skip {
			filtered = append(filtered, o)
			continue
		}
		if !e.copier.Exists(o.Item.FullPath) {
			o = reject(o.Item, errors.Newf(errors.ErrMissingSource, "source does not exist: %s", o.Item.FullPath).
				WithDetail("path", o.Item.Path))
		}
		filtered = append(filtered, o)
	}

	return filtered
}

// materialize copies every outcome into vault and returns how many items
// were copied. It stops at the first required item whose destination
// cannot be created.
func (e *Engine) materialize(outcomes []Outcome, vault string) (int, error) {
	copied := 0

	for _, o := range outcomes {
		item := o.Item
		dst := filepath.Join(vault, item.Path)

		if err := e.copier.MakeDirs(filepath.Dir(dst)); err != nil {
			rejected := reject(item, errors.Wrapf(err, errors.ErrDestinationCreateFailure,
				"cannot create %s", filepath.Dir(dst)))
			if rejected.Status == Failed {
				return copied, rejected.Err
			}
			survivors([]Outcome{rejected}, e.logger, "materialize")
			continue
		}

		if e.copyEntry(item.FullPath, dst) {
			copied++
		}
	}

	return copied, nil
}

// copyEntry copies a file or directory. Copy failures and unsupported
// entry types are logged, never returned.
func (e *Engine) copyEntry(src, dst string) bool {
	logger := e.logger.With().Str("src", src).Str("dst", dst).Logger()

	var err error
	switch {
	case e.copier.IsDir(src):
		err = e.copier.CopyTree(src, dst)
	case e.copier.IsFile(src):
		err = e.copier.CopyFile(src, dst)
	default:
		err = errors.Newf(errors.ErrUnsupportedEntryType, "unsupported entry type: %s", src)
	}

	if err != nil {
		logger.Warn().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Copy failed")
		return false
	}

	logger.Trace().Msg("Copied")
	return true
}
