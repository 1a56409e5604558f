package badger

import "fmt"

// NewMemoryRepository creates an in-memory vector repository for testing.
// Returns the repository and the backend so callers can close both.
func NewMemoryRepository() (*VectorRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open in-memory backend: %w", err)
	}
	return NewVectorRepository(backend), backend, nil
}
