package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/storage"
)

// VectorRepository implements storage.VectorRepository using BadgerDB.
type VectorRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a vector repository on top of an open backend.
func NewVectorRepository(backend *Backend) *VectorRepository {
	return &VectorRepository{
		backend: backend,
		logger:  slog.Default().With("component", "vector_repository"),
	}
}

// GetVector retrieves the cached embedding for a product.
func (r *VectorRepository) GetVector(ctx context.Context, id core.ID) (*core.ProductVector, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var vector *core.ProductVector
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(vectorKey(uint64(id)))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			vector, err = storage.UnmarshalProductVector(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// GetVectors retrieves cached embeddings for multiple products.
// Missing entries are skipped.
func (r *VectorRepository) GetVectors(ctx context.Context, ids ...core.ID) ([]*core.ProductVector, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	vectors := make([]*core.ProductVector, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(vectorKey(uint64(id)))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				vector, err := storage.UnmarshalProductVector(val)
				if err != nil {
					return err
				}
				vectors = append(vectors, vector)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// PutVector stores an embedding if none exists for the product, or if
// the existing entry was computed from different content. When an entry
// with the same content hash already exists the stored entry is
// returned unchanged, so concurrent writers for the same product
// converge on a single cached vector.
func (r *VectorRepository) PutVector(ctx context.Context, vector *core.ProductVector) (*core.ProductVector, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if vector == nil {
		return nil, fmt.Errorf("%w: nil vector", storage.ErrSerializationFailed)
	}

	stored := vector
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := vectorKey(uint64(vector.ProductID))

		item, err := tx.Get(key)
		if err == nil {
			var existing *core.ProductVector
			err = item.Value(func(val []byte) error {
				existing, err = storage.UnmarshalProductVector(val)
				return err
			})
			if err != nil {
				return err
			}
			if existing.ContentHash == vector.ContentHash {
				stored = existing
				return nil
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := tx.Set(key, storage.MarshalProductVector(vector)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("stored vector",
		"product_id", vector.ProductID,
		"dimensions", len(stored.Values))
	return stored, nil
}

// DeleteVector removes a cached embedding.
func (r *VectorRepository) DeleteVector(ctx context.Context, id core.ID) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := vectorKey(uint64(id))
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of cached embeddings.
func (r *VectorRepository) Count(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vectorPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying backend.
func (r *VectorRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}
