package domain

import "path/filepath"

const (
	// ScratchDirPrefix prefixes every scratch directory name.
	ScratchDirPrefix = "obj-"

	// StateDirName is the name of the internal state directory.
	StateDirName = ".cclink"

	// RecordDirName is the name of the build record directory.
	RecordDirName = "records"

	// RecipeFileName is the default recipe file name.
	RecipeFileName = "cclink.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ObjectExtensions lists the object file extensions a compile may produce, in lookup order.
var ObjectExtensions = []string{".obj", ".o"}

// DefaultRecordPath returns the record directory relative to a working directory.
// It joins .cclink and records.
func DefaultRecordPath() string {
	return filepath.Join(StateDirName, RecordDirName)
}
