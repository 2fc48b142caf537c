// Package fs implements filesystem adapters for the orchestrator's scratch handling and digests.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/cclink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Workspace = (*Workspace)(nil)

// Workspace implements ports.Workspace on the local filesystem.
type Workspace struct{}

// NewWorkspace creates a new Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// FindFile returns the absolute path of an existing file.
func (w *Workspace) FindFile(path string, missing error) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve absolute path"), "path", path)
	}

	info, err := os.Stat(abs)
	if err == nil {
		if info.IsDir() {
			return "", domain.Tag(domain.ErrUnexpectedEntryKind,
				zerr.With(zerr.New("expected a file, found a directory"), "path", abs))
		}
		return abs, nil
	}

	dir, name := filepath.Split(abs)
	dir = filepath.Clean(dir)
	if !isDir(dir) {
		return "", domain.Tag(domain.ErrMissingDirectory,
			zerr.With(zerr.With(zerr.New("missing directory"), "dir", dir), "file", name))
	}
	return "", domain.Tag(missing, zerr.With(zerr.With(zerr.New("missing file"), "file", name), "dir", dir))
}

// IsFile reports whether path exists and is not a directory.
func (w *Workspace) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DeleteFile removes a file. A missing file is not an error; a directory is.
func (w *Workspace) DeleteFile(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return domain.Tag(domain.ErrFileDelete, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path))
	}

	if info.IsDir() {
		return domain.Tag(domain.ErrUnexpectedEntryKind,
			zerr.With(zerr.New("expected a file, found a directory"), "path", path))
	}

	if err := os.Remove(path); err != nil {
		return domain.Tag(domain.ErrFileDelete, zerr.With(zerr.Wrap(err, "unable to delete file"), "path", path))
	}
	return nil
}

// CleanDir creates dir, or deletes every entry in it when it already exists.
// Entries are removed one level deep; a subdirectory is reported, not descended into.
func (w *Workspace) CleanDir(dir string) error {
	existed, err := ensureDir(dir)
	if err != nil || !existed {
		return err
	}
	return w.deleteEntries(dir)
}

// DeleteDir removes every file in dir and then dir itself.
func (w *Workspace) DeleteDir(dir string) error {
	if !isDir(dir) {
		return domain.Tag(domain.ErrUnexpectedEntryKind,
			zerr.With(zerr.New("expected a directory"), "dir", dir))
	}

	if err := w.deleteEntries(dir); err != nil {
		return err
	}

	if err := os.Remove(dir); err != nil {
		return domain.Tag(domain.ErrDirectoryDelete, zerr.With(zerr.Wrap(err, "unable to delete directory"), "dir", dir))
	}
	return nil
}

// Move renames src to dst.
func (w *Workspace) Move(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "rename failed"), "from", src), "to", dst)
	}
	return nil
}

func (w *Workspace) deleteEntries(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return domain.Tag(domain.ErrDirectoryDelete, zerr.With(zerr.Wrap(err, "unable to list directory"), "dir", dir))
	}

	for _, entry := range entries {
		if err := w.DeleteFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ensureDir creates dir when missing and reports whether it already existed.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, domain.Tag(domain.ErrUnexpectedEntryKind,
				zerr.With(zerr.New("expected a directory, found a file"), "dir", dir))
		}
		return true, nil
	}

	if err := os.Mkdir(dir, domain.DirPerm); err != nil {
		return false, domain.Tag(domain.ErrDirectoryCreate, zerr.With(zerr.Wrap(err, "unable to create directory"), "dir", dir))
	}
	return false, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
