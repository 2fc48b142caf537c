// Package cas stores build records as one JSON file per output.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/cclink/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.RecordStore. Records live under
// <workDir>/.cclink/records, named by the hash of the output's absolute path.
type Store struct{}

var _ ports.RecordStore = (*Store)(nil)

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the record for an output. It returns nil, nil when there is none.
func (s *Store) Get(workDir, output string) (*domain.BuildRecord, error) {
	filename := s.Path(workDir, output)
	//nolint:gosec // Path is constructed from the work directory and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Tag(domain.ErrStoreRead, zerr.With(zerr.Wrap(err, "read failed"), "path", filename))
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, domain.Tag(domain.ErrStoreUnmarshal, zerr.With(zerr.Wrap(err, "invalid json"), "path", filename))
	}

	return &record, nil
}

// Put stores the record, replacing any earlier record for the same output.
func (s *Store) Put(workDir string, record domain.BuildRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return domain.Tag(domain.ErrStoreMarshal, zerr.Wrap(err, "encode failed"))
	}
	data = append(data, '\n')

	filename := s.Path(workDir, record.Output)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return domain.Tag(domain.ErrStoreWrite, zerr.With(zerr.Wrap(err, "mkdir failed"), "path", filename))
	}

	//nolint:gosec // Path is constructed from the work directory and a hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return domain.Tag(domain.ErrStoreWrite, zerr.With(zerr.Wrap(err, "write failed"), "path", filename))
	}

	return nil
}

// Delete removes the record for an output. A missing record is not an error.
func (s *Store) Delete(workDir, output string) error {
	filename := s.Path(workDir, output)
	if err := os.Remove(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.Tag(domain.ErrStoreWrite, zerr.With(zerr.Wrap(err, "remove failed"), "path", filename))
	}
	return nil
}

// Path returns the record file for an output.
func (s *Store) Path(workDir, output string) string {
	key := output
	if !filepath.IsAbs(key) {
		key = filepath.Join(workDir, key)
	}
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	hash := sha256.Sum256([]byte(key))
	return filepath.Join(workDir, domain.DefaultRecordPath(), hex.EncodeToString(hash[:])+".json")
}
