package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/cclink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher digests build artifacts with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// DigestFile computes the XXHash of a file's content as 16 hex digits.
func (h *Hasher) DigestFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", domain.Tag(domain.ErrOutputHash, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path))
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", domain.Tag(domain.ErrOutputHash, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path))
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
