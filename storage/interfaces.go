// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"

	"github.com/poiesic/findit/core"
)

// VectorRepository provides the persistent embedding cache.
//
// Entries are write-once per product id: once a vector is stored for an
// id, a concurrent or repeated Put for the same id must not overwrite
// it unless the content hash differs (the product text changed). This
// single-writer discipline prevents duplicate provider calls during a
// concurrent index build.
type VectorRepository interface {
	// GetVector retrieves the cached embedding for a product.
	// Returns ErrNotFound if no entry exists.
	GetVector(ctx context.Context, id core.ID) (*core.ProductVector, error)

	// GetVectors retrieves cached embeddings for multiple products.
	// Returns only the entries that exist (no error for missing entries).
	GetVectors(ctx context.Context, ids ...core.ID) ([]*core.ProductVector, error)

	// PutVector stores an embedding if the id has no entry yet, or if
	// the existing entry's content hash differs. Returns the entry that
	// is now stored, which may be the pre-existing one when a
	// concurrent writer won the race.
	PutVector(ctx context.Context, vector *core.ProductVector) (*core.ProductVector, error)

	// DeleteVector removes a cached embedding.
	// Returns ErrNotFound if the entry doesn't exist.
	DeleteVector(ctx context.Context, id core.ID) error

	// Count returns the number of cached embeddings.
	Count(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
