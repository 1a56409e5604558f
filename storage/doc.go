// Package storage defines the persistence interfaces for the embedding
// cache and the binary serialization helpers shared by its backends.
//
// The cache stores one ProductVector per product id, keyed by the
// product's content hash so that stale entries are replaced when the
// catalog text changes. Backends live in subpackages; see
// storage/badger for the BadgerDB implementation.
package storage
