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


package ai

import (
	"context"

	"github.com/poiesic/findit/core"
)

// Embedder generates vector embeddings from text for dense retrieval.
// Implementations must be thread-safe for concurrent use.
//
// Embeddings must be stable for identical input within one serving
// session. Providers may drift across sessions; the engine's vector
// cache keys on a content hash, so drift only re-embeds changed text.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// All vectors returned by one Embedder share one dimensionality.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryUnderstander converts a raw query string into a structured Intent.
// Implementations must be thread-safe for concurrent use.
type QueryUnderstander interface {
	// Understand extracts keywords, filters, sort preference, and
	// expansion terms from the query. A provider error or unparseable
	// response returns an error wrapping core.ErrQueryUnderstanding;
	// callers then use core.FallbackIntent.
	Understand(ctx context.Context, query string) (*core.Intent, error)
}

// PairwiseScorer scores a (query, candidate text) pair jointly.
// Higher scores mean more relevant. Each pair is scored independently.
// Implementations must be thread-safe for concurrent use.
type PairwiseScorer interface {
	Score(ctx context.Context, query, candidateText string) (float64, error)
}

// Selection is the structured output of a generative selector: a full
// reordering of candidate ids, a single top pick, and a rationale.
type Selection struct {
	RankedIDs  []core.ID
	TopMatchID core.ID
	Rationale  string
}

// Selector reviews a bounded candidate set and produces a Selection.
// Implementations must be thread-safe for concurrent use.
type Selector interface {
	// Select asks the generative model to reorder the candidates and
	// pick the single best match for the query and intent. An
	// unparseable response returns an error wrapping
	// core.ErrRerankParse; callers then keep their input order.
	Select(ctx context.Context, query string, intent *core.Intent, candidates []*core.ProductRecord) (*Selection, error)
}

// AIProvider aggregates model services for convenient initialization and
// lifecycle management. A provider creates and manages its services,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// QueryUnderstander returns the query understanding service.
	QueryUnderstander() QueryUnderstander

	// PairwiseScorer returns the pairwise relevance scoring service.
	PairwiseScorer() PairwiseScorer

	// Selector returns the generative selection service.
	Selector() Selector

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
