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


package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/storage"
)

// Index is the searchable corpus snapshot: the product records in their
// original order plus the lexical and dense structures built over them.
type Index struct {
	Products []*core.ProductRecord
	Lexical  *LexicalIndex
	Dense    *DenseIndex
	Stats    BuildStats
}

// BuildStats summarizes one index build.
type BuildStats struct {
	ProductCount  int
	EmbeddedCount int
	// DegradedCount is the number of products whose embedding failed.
	// Degraded products remain in the lexical index.
	DegradedCount int
	CacheHits     int
	TermCount     int
	Duration      time.Duration
}

// Builder constructs an Index from a product corpus. Embedding runs on
// a worker pool and results are merged back by corpus position, so the
// built matrix is deterministic regardless of completion order.
type Builder struct {
	embedder ai.Embedder
	vectors  storage.VectorRepository
	pool     *ants.Pool
	tokenize Tokenizer
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithVectorCache sets a repository used to cache embeddings across
// builds. Entries are reused when the product's content hash matches.
func WithVectorCache(vectors storage.VectorRepository) Option {
	return func(b *Builder) error {
		b.vectors = vectors
		return nil
	}
}

// WithTokenizer sets a custom tokenizer for the lexical index.
// Default is DefaultTokenizer.
func WithTokenizer(tokenize Tokenizer) Option {
	return func(b *Builder) error {
		if tokenize == nil {
			tokenize = DefaultTokenizer
		}
		b.tokenize = tokenize
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates an index builder.
func NewBuilder(embedder ai.Embedder, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		embedder: embedder,
		pool:     pool,
		tokenize: DefaultTokenizer,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	b.logger = b.logger.With("component", "index_builder")
	return b, nil
}

// Build validates the corpus and constructs the lexical and dense
// indexes. Corpus validation failures abort the build. Per-product
// embedding failures do not: the product is counted as degraded and
// indexed lexically only.
func (b *Builder) Build(ctx context.Context, products []*core.ProductRecord) (*Index, error) {
	start := time.Now()

	if err := core.ValidateCorpus(products); err != nil {
		return nil, err
	}

	b.logger.Info("building index", "products", len(products))

	texts := make([]string, len(products))
	for i, product := range products {
		texts[i] = product.LexicalText()
	}
	lexical := newLexicalIndex(texts, b.tokenize)

	vectors, cacheHits := b.embedAll(ctx, products)
	dense := newDenseIndex(vectors)

	stats := BuildStats{
		ProductCount:  len(products),
		EmbeddedCount: dense.EmbeddedCount(),
		DegradedCount: len(products) - dense.EmbeddedCount(),
		CacheHits:     cacheHits,
		TermCount:     lexical.TermCount(),
		Duration:      time.Since(start),
	}

	b.logger.Info("index built",
		"products", stats.ProductCount,
		"embedded", stats.EmbeddedCount,
		"degraded", stats.DegradedCount,
		"cache_hits", stats.CacheHits,
		"terms", stats.TermCount,
		"duration", stats.Duration)

	return &Index{
		Products: products,
		Lexical:  lexical,
		Dense:    dense,
		Stats:    stats,
	}, nil
}

// embedAll produces one unit vector per corpus position, nil where the
// product could not be embedded. Cache lookups happen inline; provider
// calls fan out over the worker pool.
func (b *Builder) embedAll(ctx context.Context, products []*core.ProductRecord) ([][]float32, int) {
	vectors := make([][]float32, len(products))
	cacheHits := 0

	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, product := range products {
		embedText := product.EmbedText()
		contentHash := core.IDFromContent(embedText)

		if cached := b.cachedVector(ctx, product.Id, contentHash); cached != nil {
			vectors[i] = normalizeVector(cached)
			cacheHits++
			continue
		}

		doc := i
		record := product
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()

			vector, err := b.embedder.EmbedText(ctx, embedText)
			if err != nil {
				b.logger.Warn("embedding failed, product degraded to lexical only",
					"product_id", record.Id,
					"err", fmt.Errorf("%w: %w", core.ErrEmbedding, err))
				return
			}
			unit := normalizeVector(vector)

			mu.Lock()
			vectors[doc] = unit
			mu.Unlock()

			b.storeVector(ctx, record.Id, contentHash, unit)
		})
		if err != nil {
			wg.Done()
			b.logger.Warn("embedding submit failed, product degraded to lexical only",
				"product_id", record.Id, "err", err)
		}
	}

	wg.Wait()
	return vectors, cacheHits
}

// cachedVector returns the cached embedding for a product when the
// cache holds an entry computed from the same content.
func (b *Builder) cachedVector(ctx context.Context, id core.ID, contentHash core.ID) []float32 {
	if b.vectors == nil {
		return nil
	}
	entry, err := b.vectors.GetVector(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			b.logger.Warn("vector cache read failed", "product_id", id, "err", err)
		}
		return nil
	}
	if entry.ContentHash != contentHash {
		return nil
	}
	return entry.Values
}

// storeVector writes a freshly computed embedding to the cache.
// Cache failures are logged and otherwise ignored.
func (b *Builder) storeVector(ctx context.Context, id core.ID, contentHash core.ID, values []float32) {
	if b.vectors == nil {
		return
	}
	_, err := b.vectors.PutVector(ctx, &core.ProductVector{
		ProductID:   id,
		ContentHash: contentHash,
		Values:      values,
	})
	if err != nil {
		b.logger.Warn("vector cache write failed", "product_id", id, "err", err)
	}
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
