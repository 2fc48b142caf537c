package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// BuildRequest describes one compile-then-link build.
// It is treated as immutable for the duration of a build.
type BuildRequest struct {
	// SourceFiles are compiled in this order.
	SourceFiles []string
	// CompileCommand is invoked once per source with the absolute source path.
	CompileCommand string
	// LinkCommand is invoked once with the output path followed by the objects.
	LinkCommand string
	// OutputPath is the artifact the link command must produce.
	OutputPath string

	KeepIntermediates bool
	ForceRebuild      bool
	Verbose           bool

	// WorkDir is where commands run and where fresh objects are looked up.
	// Empty means the process working directory.
	WorkDir string
	// Jobs bounds concurrent compile invocations. Values below 2 compile sequentially.
	Jobs int
}

// Validate checks that the request names everything a build needs.
func (r *BuildRequest) Validate() error {
	switch {
	case r.CompileCommand == "":
		return Tag(ErrInvalidRequest, zerr.New("compile command is required"))
	case r.LinkCommand == "":
		return Tag(ErrInvalidRequest, zerr.New("link command is required"))
	case r.OutputPath == "":
		return Tag(ErrInvalidRequest, zerr.New("output path is required"))
	case len(r.SourceFiles) == 0:
		return Tag(ErrInvalidRequest, zerr.New("at least one source file is required"))
	case r.Jobs < 0:
		return Tag(ErrInvalidRequest, zerr.With(zerr.New("jobs must not be negative"), "jobs", r.Jobs))
	}
	return nil
}

// Parallel reports whether compile invocations may overlap.
func (r *BuildRequest) Parallel() bool {
	return r.Jobs > 1
}

// ScratchDirName returns the per-output scratch directory name. It depends only
// on the base name of the output, so "out/prog.exe" yields "obj-prog-exe".
func ScratchDirName(outputPath string) string {
	return ScratchDirPrefix + strings.ReplaceAll(filepath.Base(outputPath), ".", "-")
}

// SourceStem returns the base name of a source file without its extension.
func SourceStem(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ObjectCandidates returns the object file names a compile of sourcePath may
// produce, in lookup order.
func ObjectCandidates(sourcePath string) []string {
	stem := SourceStem(sourcePath)
	candidates := make([]string, 0, len(ObjectExtensions))
	for _, ext := range ObjectExtensions {
		candidates = append(candidates, stem+ext)
	}
	return candidates
}
