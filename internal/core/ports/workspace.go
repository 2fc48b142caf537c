package ports

// Workspace defines the filesystem operations the orchestrator relies on.
// Errors are tagged with the matching domain sentinel.
//
//go:generate mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// FindFile returns the absolute path of an existing file.
	// A missing file yields an error tagged with missing, or with
	// domain.ErrMissingDirectory when its parent directory is absent too.
	FindFile(path string, missing error) (string, error)

	// IsFile reports whether path exists and is a regular file.
	IsFile(path string) bool

	// DeleteFile removes a file. A missing file is not an error.
	DeleteFile(path string) error

	// CleanDir creates dir, or empties it one level deep when it already exists.
	CleanDir(dir string) error

	// DeleteDir removes every file in dir and then dir itself.
	DeleteDir(dir string) error

	// Move renames src to dst.
	Move(src, dst string) error
}
