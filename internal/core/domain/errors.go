package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingTool is returned when the compile or link command does not exist as a file.
	ErrMissingTool = zerr.New("tool not found")

	// ErrMissingSource is returned when a listed source file does not exist.
	ErrMissingSource = zerr.New("source file not found")

	// ErrMissingDirectory is returned when the parent directory of a required file does not exist.
	ErrMissingDirectory = zerr.New("directory not found")

	// ErrCompileInvocation is returned when the compile command cannot be started.
	ErrCompileInvocation = zerr.New("failed to run compile command")

	// ErrCompileOutputMissing is returned when a compile invocation leaves no object file behind.
	ErrCompileOutputMissing = zerr.New("compile command produced no object file")

	// ErrObjectCollision is returned when two sources of one build share an object name.
	ErrObjectCollision = zerr.New("object file already exists in scratch directory")

	// ErrObjectMove is returned when an object file cannot be moved into the scratch directory.
	ErrObjectMove = zerr.New("failed to move object file")

	// ErrLinkInvocation is returned when the link command cannot be started.
	ErrLinkInvocation = zerr.New("failed to run link command")

	// ErrLinkOutputMissing is returned when the link command does not produce the output file.
	ErrLinkOutputMissing = zerr.New("link command produced no output file")

	// ErrDirectoryCreate is returned when the scratch directory cannot be created.
	ErrDirectoryCreate = zerr.New("failed to create directory")

	// ErrDirectoryDelete is returned when the scratch directory cannot be removed.
	ErrDirectoryDelete = zerr.New("failed to delete directory")

	// ErrFileDelete is returned when a file cannot be removed.
	ErrFileDelete = zerr.New("failed to delete file")

	// ErrUnexpectedEntryKind is returned when a path expected to be a file is a directory, or vice versa.
	ErrUnexpectedEntryKind = zerr.New("unexpected entry kind")

	// ErrInvalidRequest is returned when a build request lacks a required field.
	ErrInvalidRequest = zerr.New("invalid build request")

	// ErrRecipeNotFound is returned when the recipe file cannot be found.
	ErrRecipeNotFound = zerr.New("recipe file not found")

	// ErrRecipeRead is returned when the recipe file cannot be read.
	ErrRecipeRead = zerr.New("failed to read recipe file")

	// ErrRecipeParse is returned when the recipe file cannot be parsed.
	ErrRecipeParse = zerr.New("failed to parse recipe file")

	// ErrRecordNotFound is returned when no build record exists for an output.
	ErrRecordNotFound = zerr.New("no build record for output")

	// ErrStoreRead is returned when a build record cannot be read.
	ErrStoreRead = zerr.New("failed to read build record")

	// ErrStoreWrite is returned when a build record cannot be written.
	ErrStoreWrite = zerr.New("failed to write build record")

	// ErrStoreMarshal is returned when a build record cannot be marshaled.
	ErrStoreMarshal = zerr.New("failed to marshal build record")

	// ErrStoreUnmarshal is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshal = zerr.New("failed to unmarshal build record")

	// ErrOutputHash is returned when the output digest cannot be computed.
	ErrOutputHash = zerr.New("failed to compute output digest")

	// ErrCommandStart is returned by executors when a process cannot be started.
	ErrCommandStart = zerr.New("failed to start command")

	// ErrCommandExited is returned by executors when a process exits unsuccessfully.
	ErrCommandExited = zerr.New("command exited with non-zero status")

	// ErrBuildFailed is returned by the app layer when the orchestrated build fails.
	ErrBuildFailed = zerr.New("build failed")
)

// Tag attaches one of the sentinel kinds above to a detailed error, so that
// errors.Is(err, kind) holds while the detail and its metadata stay in the chain.
func Tag(kind, err error) error {
	if err == nil {
		return kind
	}
	return &taggedError{kind: kind, err: err}
}

type taggedError struct {
	kind error
	err  error
}

func (e *taggedError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

// Message reports the kind alone; the logger walks Unwrap for the rest.
func (e *taggedError) Message() string {
	return e.kind.Error()
}

func (e *taggedError) Unwrap() error {
	return e.err
}

func (e *taggedError) Is(target error) bool {
	return target == e.kind
}
