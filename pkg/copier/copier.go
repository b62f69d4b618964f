package copier

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/logging"
	"github.com/arthur-debert/homevault/pkg/paths"
	"github.com/rs/zerolog"
)

// Service is the set of filesystem primitives used by the pipelines.
type Service interface {
	// CopyFile copies a single file, replacing any existing destination.
	CopyFile(src, dst string) error
	// CopyTree merges the directory src into dst with update semantics.
	CopyTree(src, dst string) error
	MakeDirs(path string) error
	Exists(path string) bool
	IsDir(path string) bool
	IsFile(path string) bool
	IsSymlink(path string) bool
	ReadLink(path string) (string, error)
	Symlink(target, link string) error
	Remove(path string) error
	Canonicalize(path string) (string, error)
	RelativePath(target, base string) (string, error)
}

type osCopier struct {
	logger zerolog.Logger
}

// New returns a Service working on the OS filesystem.
func New() Service {
	return &osCopier{logger: logging.GetLogger("copier")}
}

func (c *osCopier) MakeDirs(path string) error {
	return os.MkdirAll(path, 0755)
}

func (c *osCopier) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (c *osCopier) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (c *osCopier) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (c *osCopier) IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func (c *osCopier) ReadLink(path string) (string, error) {
	return os.Readlink(path)
}

func (c *osCopier) Symlink(target, link string) error {
	return os.Symlink(target, link)
}

func (c *osCopier) Remove(path string) error {
	return os.Remove(path)
}

func (c *osCopier) Canonicalize(path string) (string, error) {
	return paths.Canonicalize(path)
}

func (c *osCopier) RelativePath(target, base string) (string, error) {
	return paths.Relative(target, base)
}

func (c *osCopier) CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "cannot stat %s", src)
	}
	if !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrUnsupportedEntryType, "not a regular file: %s", src).
			WithDetail("mode", info.Mode().String())
	}

	if _, err := os.Lstat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return errors.Wrapf(err, errors.ErrCopy, "cannot replace %s", dst)
		}
	}

	if err := copyContent(src, dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to copy %s to %s", src, dst)
	}

	c.preserve(dst, info)
	return nil
}

func copyContent(src, dst string, perm fs.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// preserve applies ownership, mode and times of info to path.
// Ownership goes first since chown may clear setuid bits.
func (c *osCopier) preserve(path string, info fs.FileInfo) {
	logger := c.logger.With().Str("path", path).Logger()

	if uid, gid, ok := fileOwner(info); ok {
		if err := os.Lchown(path, uid, gid); err != nil {
			logger.Warn().Err(err).Int("uid", uid).Int("gid", gid).Msg("Failed to preserve ownership")
		}
	}

	if err := os.Chmod(path, info.Mode()&(fs.ModePerm|fs.ModeSetuid|fs.ModeSetgid|fs.ModeSticky)); err != nil {
		logger.Warn().Err(err).Msg("Failed to preserve permissions")
	}

	if err := os.Chtimes(path, accessTime(info), info.ModTime()); err != nil {
		logger.Warn().Err(err).Msg("Failed to preserve timestamps")
	}
}

func (c *osCopier) CopyTree(src, dst string) error {
	root, err := c.Canonicalize(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "cannot resolve %s", src)
	}

	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "cannot stat %s", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrUnsupportedEntryType, "not a directory: %s", src)
	}

	c.logger.Debug().Str("src", src).Str("dst", dst).Msg("Copying tree")
	return c.copyDir(root, dst, info, map[string]bool{})
}

// copyDir copies the canonical directory src. ancestors holds the canonical
// directories currently being copied, so symlink loops are cut.
func (c *osCopier) copyDir(src, dst string, info fs.FileInfo, ancestors map[string]bool) error {
	ancestors[src] = true
	defer delete(ancestors, src)

	if err := os.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "cannot create directory %s", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "cannot read directory %s", src)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		logger := c.logger.With().Str("src", from).Logger()

		// follow symlinks, like cp -L
		entryInfo, err := os.Stat(from)
		if err != nil {
			logger.Warn().Err(err).Msg("Skipping unreadable entry")
			continue
		}

		switch {
		case entryInfo.IsDir():
			resolved, err := filepath.EvalSymlinks(from)
			if err != nil {
				logger.Warn().Err(err).Msg("Skipping unresolvable directory")
				continue
			}
			if ancestors[resolved] {
				logger.Warn().Str("target", resolved).Msg("Skipping directory cycle")
				continue
			}
			if err := c.copyDir(resolved, to, entryInfo, ancestors); err != nil {
				logger.Warn().Err(err).Msg("Failed to copy directory")
			}
		case entryInfo.Mode().IsRegular():
			if !needsUpdate(entryInfo, to) {
				logger.Trace().Msg("Destination is newer, skipping")
				continue
			}
			if err := c.CopyFile(from, to); err != nil {
				logger.Warn().Err(err).Msg("Failed to copy file")
			}
		default:
			logger.Warn().Str("mode", entryInfo.Mode().String()).Msg("Unsupported entry type, skipping")
		}
	}

	c.preserve(dst, info)
	return nil
}

// needsUpdate reports whether dst is absent or not newer than the source.
func needsUpdate(src fs.FileInfo, dst string) bool {
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return true
	}
	return !src.ModTime().Before(dstInfo.ModTime())
}
