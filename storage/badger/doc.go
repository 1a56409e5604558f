// Package badger implements the storage interfaces using BadgerDB.
//
// The backend supports both on-disk and in-memory modes. In-memory mode
// is intended for tests and ephemeral runs; see NewMemoryRepository.
package badger
