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


package findit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/ai/openai"
	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/eval"
	"github.com/poiesic/findit/index"
	"github.com/poiesic/findit/query"
	"github.com/poiesic/findit/rerank"
	"github.com/poiesic/findit/search"
	"github.com/poiesic/findit/storage"
	"github.com/poiesic/findit/storage/badger"
)

// RerankStrategy selects the second-stage ranking model.
type RerankStrategy string

const (
	// RerankNone skips the second stage.
	RerankNone RerankStrategy = "none"
	// RerankCrossEncoder scores each candidate pair independently.
	RerankCrossEncoder RerankStrategy = "cross_encoder"
	// RerankSelector asks a generative model for a full ordering.
	RerankSelector RerankStrategy = "selector"
)

// ErrNotIndexed is returned when Search or NewEvaluator is called
// before Index.
var ErrNotIndexed = errors.New("no corpus indexed")

// Engine wires the full retrieval pipeline: provider, embedding cache,
// index, retriever, query understander, and reranker.
type Engine struct {
	backend    *badger.Backend
	vectorRepo storage.VectorRepository
	provider   ai.AIProvider

	builder      *index.Builder
	understander *query.Understander
	reranker     rerank.Reranker
	strategy     RerankStrategy

	idx       *index.Index
	retriever *search.Retriever

	alpha  float64
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	strategy RerankStrategy
	alpha    float64
	inMemory bool
}

// WithAIConfig sets the provider endpoints and models.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built provider instead of constructing
// the OpenAI-compatible one. Used by tests with the mock provider.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithRerankStrategy selects the second ranking stage.
// Default is the generative selector.
func WithRerankStrategy(strategy RerankStrategy) EngineOption {
	return func(o *engineOptions) {
		if strategy != "" {
			o.strategy = strategy
		}
	}
}

// WithFusionAlpha sets the dense weight for hybrid retrieval.
// Default is 0.5.
func WithFusionAlpha(alpha float64) EngineOption {
	return func(o *engineOptions) {
		o.alpha = alpha
	}
}

// WithInMemoryCache keeps the embedding cache off disk.
func WithInMemoryCache() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine creates an engine with its embedding cache at filePath.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		strategy: RerankSelector,
		alpha:    search.DefaultAlpha,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	vectorRepo := badger.NewVectorRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	builder, err := index.NewBuilder(provider.Embedder(), index.WithVectorCache(vectorRepo))
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	understander, err := query.NewUnderstander(provider.QueryUnderstander())
	if err != nil {
		builder.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	var reranker rerank.Reranker
	switch options.strategy {
	case RerankCrossEncoder:
		reranker, err = rerank.NewCrossEncoder(provider.PairwiseScorer())
	case RerankSelector:
		reranker, err = rerank.NewSelectorReranker(provider.Selector())
	case RerankNone:
		reranker = nil
	}
	if err != nil {
		builder.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:      backend,
		vectorRepo:   vectorRepo,
		provider:     provider,
		builder:      builder,
		understander: understander,
		reranker:     reranker,
		strategy:     options.strategy,
		alpha:        options.alpha,
		logger:       slog.Default().With("component", "engine"),
	}, nil
}

// Index builds the searchable snapshot for a product corpus. It must
// be called before Search. Rebuilding replaces the previous snapshot.
func (e *Engine) Index(ctx context.Context, products []*core.ProductRecord) (*index.BuildStats, error) {
	idx, err := e.builder.Build(ctx, products)
	if err != nil {
		return nil, err
	}

	retriever, err := search.NewRetriever(idx, e.provider.Embedder(), search.WithAlpha(e.alpha))
	if err != nil {
		return nil, err
	}

	e.idx = idx
	e.retriever = retriever
	return &idx.Stats, nil
}

// SearchResult is the full outcome of one query: the understood
// intent, the reranked candidates, and any degradations hit on the way.
type SearchResult struct {
	Intent   *core.Intent
	Ranked   *core.RankedResult
	Degraded bool
	Reason   string
}

// Search runs the full pipeline: understand the query, retrieve with
// hybrid fusion, then rerank. Provider failures degrade stage by stage
// instead of failing the search.
func (e *Engine) Search(ctx context.Context, rawQuery string, topK int) (*SearchResult, error) {
	if e.retriever == nil {
		return nil, ErrNotIndexed
	}

	understanding, err := e.understander.Understand(ctx, rawQuery)
	if err != nil {
		return nil, err
	}

	// Non-search utterances (greetings, chitchat) skip retrieval.
	// The fallback Intent always has the flag set, so a degraded
	// understanding still searches.
	if !understanding.Intent.IsSearch {
		e.logger.Info("query has no search intent", "query", rawQuery)
		return &SearchResult{
			Intent: understanding.Intent,
			Ranked: &core.RankedResult{Candidates: []*core.Candidate{}},
		}, nil
	}

	monitor := search.NewLoggingMonitor(e.logger)
	candidates, err := e.retriever.SearchHybridWithMonitor(ctx, rawQuery, understanding.Intent, topK, monitor)
	if err != nil {
		// Dense scoring needs the provider; fall back to lexical only.
		e.logger.Warn("hybrid retrieval failed, falling back to lexical",
			"query", rawQuery, "err", err)
		candidates, err = e.retriever.SearchLexical(ctx, understanding.Intent, topK)
		if err != nil {
			return nil, err
		}
	}

	result := &SearchResult{
		Intent:   understanding.Intent,
		Degraded: understanding.Degraded,
		Reason:   understanding.DegradedReason,
	}

	if e.reranker == nil || len(candidates) == 0 {
		result.Ranked = &core.RankedResult{Candidates: candidates}
		return result, nil
	}

	ranked, err := e.reranker.Rerank(ctx, rawQuery, understanding.Intent, candidates)
	if err != nil {
		return nil, err
	}
	result.Ranked = ranked
	if ranked.Fallback {
		result.Degraded = true
		if result.Reason == "" {
			result.Reason = ranked.FallbackReason
		}
	}
	return result, nil
}

// NewEvaluator creates an evaluator over the current index. When the
// engine carries a reranker it is made available to the reranked
// evaluation method.
func (e *Engine) NewEvaluator(opts ...eval.Option) (*eval.Evaluator, error) {
	if e.retriever == nil {
		return nil, ErrNotIndexed
	}
	if e.reranker != nil {
		opts = append([]eval.Option{eval.WithReranker(e.reranker)}, opts...)
	}
	return eval.NewEvaluator(e.retriever, opts...)
}

// Understander exposes the query understanding service.
func (e *Engine) Understander() *query.Understander {
	return e.understander
}

// Retriever exposes the current retriever, or nil before Index.
func (e *Engine) Retriever() *search.Retriever {
	return e.retriever
}

// Close releases the worker pool, the provider, and the cache backend.
func (e *Engine) Close() error {
	e.builder.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing cache backend", "err", err)
		return err
	}
	return nil
}
