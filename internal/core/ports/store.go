package ports

import "go.trai.ch/cclink/internal/core/domain"

// RecordStore defines the interface for storing and retrieving build records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the record for an output under workDir.
	// Returns nil, nil if not found.
	Get(workDir, output string) (*domain.BuildRecord, error)

	// Put stores the record.
	Put(workDir string, record domain.BuildRecord) error

	// Delete removes the record for an output. A missing record is not an error.
	Delete(workDir, output string) error
}
