package ports

// Hasher defines the interface for digesting build artifacts.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// DigestFile returns a hex digest of the file content.
	DigestFile(path string) (string, error)
}
