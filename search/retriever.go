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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/index"
)

const (
	// DefaultAlpha is the default dense weight in hybrid fusion.
	DefaultAlpha = 0.5
	// DefaultTopK is the default result count when callers pass 0.
	DefaultTopK = 10
)

// Retriever scores a built index against structured query intents.
// It offers three strategies: lexical (BM25), dense (cosine over unit
// vectors), and hybrid (max-normalized weighted fusion of the two).
type Retriever struct {
	index    *index.Index
	embedder ai.Embedder
	docOf    map[core.ID]int
	k1       float64
	b        float64
	alpha    float64
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithBM25Params sets the BM25 k1 and b parameters.
// Defaults are k1=1.5, b=0.75.
func WithBM25Params(k1, b float64) Option {
	return func(r *Retriever) error {
		if k1 < 0 || b < 0 || b > 1 {
			return fmt.Errorf("%w: k1=%v b=%v", ErrInvalidBM25Params, k1, b)
		}
		r.k1 = k1
		r.b = b
		return nil
	}
}

// WithAlpha sets the dense weight for hybrid fusion.
// alpha=0 reproduces the lexical ranking, alpha=1 the dense ranking.
// Default is 0.5.
func WithAlpha(alpha float64) Option {
	return func(r *Retriever) error {
		if alpha < 0 || alpha > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidAlpha, alpha)
		}
		r.alpha = alpha
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a retriever over a built index.
func NewRetriever(idx *index.Index, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		index:    idx,
		embedder: embedder,
		docOf:    make(map[core.ID]int, len(idx.Products)),
		k1:       DefaultK1,
		b:        DefaultB,
		alpha:    DefaultAlpha,
		logger:   slog.Default(),
	}
	for doc, product := range idx.Products {
		r.docOf[product.Id] = doc
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.logger = r.logger.With("component", "retriever")
	return r, nil
}

// Alpha returns the configured dense fusion weight.
func (r *Retriever) Alpha() float64 {
	return r.alpha
}

// queryTerms derives the lexical query terms from an intent: keywords
// plus expansion terms, run through the index tokenizer so query and
// document terms match.
func (r *Retriever) queryTerms(intent *core.Intent) []string {
	joined := strings.Join(append(append([]string{}, intent.Keywords...), intent.Expansion...), " ")
	return r.index.Lexical.Tokenize(joined)
}

// SearchLexical ranks by BM25 over the intent's keyword and expansion
// terms. Only documents matching at least one term appear; everything
// else scores exactly 0 and is excluded. Ties keep corpus order.
func (r *Retriever) SearchLexical(ctx context.Context, intent *core.Intent, topK int) ([]*core.Candidate, error) {
	return r.searchLexical(intent, topK, &noopMonitor{})
}

func (r *Retriever) searchLexical(intent *core.Intent, topK int, monitor SearchMonitor) ([]*core.Candidate, error) {
	topK = normalizeTopK(topK)
	terms := r.queryTerms(intent)

	docs := eligibleDocs(r.index.Products, intent.Filters)
	monitor.AfterFilter(len(docs))

	scores := bm25Scores(r.index.Lexical, terms, r.k1, r.b)

	candidates := make([]*core.Candidate, 0, len(docs))
	for _, doc := range docs {
		if scores[doc] <= 0 {
			continue
		}
		candidates = append(candidates, &core.Candidate{
			Product:    r.index.Products[doc],
			Lexical:    scores[doc],
			RawLexical: scores[doc],
		})
	}
	monitor.AfterLexicalScoring(len(candidates))

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Lexical > candidates[j].Lexical
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	r.applyIntentSort(candidates, intent.Sort)
	return candidates, nil
}

// SearchDense ranks by cosine similarity between the query embedding
// and each embedded document. Unlike lexical search there is no match
// cutoff: the result always holds min(topK, embedded eligible docs)
// entries, however weak the similarity.
func (r *Retriever) SearchDense(ctx context.Context, query string, intent *core.Intent, topK int) ([]*core.Candidate, error) {
	return r.searchDense(ctx, query, intent, topK, &noopMonitor{})
}

func (r *Retriever) searchDense(ctx context.Context, query string, intent *core.Intent, topK int, monitor SearchMonitor) ([]*core.Candidate, error) {
	topK = normalizeTopK(topK)

	queryVector, err := r.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	docs := eligibleDocs(r.index.Products, intent.Filters)
	monitor.AfterFilter(len(docs))

	candidates := make([]*core.Candidate, 0, len(docs))
	for _, doc := range docs {
		if !r.index.Dense.HasVector(doc) {
			continue
		}
		score := dotProduct(queryVector, r.index.Dense.Vector(doc))
		candidates = append(candidates, &core.Candidate{
			Product:  r.index.Products[doc],
			Dense:    score,
			RawDense: score,
		})
	}
	monitor.AfterDenseScoring(len(candidates))

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Dense > candidates[j].Dense
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	r.applyIntentSort(candidates, intent.Sort)
	return candidates, nil
}

// SearchHybrid fuses lexical and dense scores. Each score list is
// normalized by its own maximum (skipped when the maximum is 0), then
// combined as alpha*dense + (1-alpha)*lexical. Documents without an
// embedding contribute only their lexical component.
func (r *Retriever) SearchHybrid(ctx context.Context, query string, intent *core.Intent, topK int) ([]*core.Candidate, error) {
	return r.SearchHybridWithMonitor(ctx, query, intent, topK, nil)
}

// SearchHybridWithMonitor is SearchHybrid with stage callbacks.
func (r *Retriever) SearchHybridWithMonitor(ctx context.Context, query string, intent *core.Intent, topK int, monitor SearchMonitor) ([]*core.Candidate, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	topK = normalizeTopK(topK)
	terms := r.queryTerms(intent)
	monitor.Start(query, terms)

	queryVector, err := r.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	docs := eligibleDocs(r.index.Products, intent.Filters)
	monitor.AfterFilter(len(docs))
	if len(docs) == 0 {
		monitor.Finish(nil)
		return []*core.Candidate{}, nil
	}

	lexical := bm25Scores(r.index.Lexical, terms, r.k1, r.b)

	dense := make([]float64, r.index.Dense.DocCount())
	for _, doc := range docs {
		if r.index.Dense.HasVector(doc) {
			dense[doc] = dotProduct(queryVector, r.index.Dense.Vector(doc))
		}
	}

	lexicalScored := 0
	var maxLexical, maxDense float64
	for _, doc := range docs {
		if lexical[doc] > 0 {
			lexicalScored++
		}
		if lexical[doc] > maxLexical {
			maxLexical = lexical[doc]
		}
		if dense[doc] > maxDense {
			maxDense = dense[doc]
		}
	}
	monitor.AfterLexicalScoring(lexicalScored)
	monitor.AfterDenseScoring(len(docs))

	candidates := make([]*core.Candidate, 0, len(docs))
	for _, doc := range docs {
		normLexical := lexical[doc]
		if maxLexical > 0 {
			normLexical /= maxLexical
		}
		normDense := dense[doc]
		if maxDense > 0 {
			normDense /= maxDense
		}

		candidates = append(candidates, &core.Candidate{
			Product:    r.index.Products[doc],
			Lexical:    normLexical,
			Dense:      normDense,
			Hybrid:     r.alpha*normDense + (1-r.alpha)*normLexical,
			RawLexical: lexical[doc],
			RawDense:   dense[doc],
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Hybrid > candidates[j].Hybrid
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	r.applyIntentSort(candidates, intent.Sort)
	monitor.Finish(candidates)
	return candidates, nil
}

// embedQuery embeds and unit-normalizes the raw query text.
func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("query embedding failed", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrEmbedding, err)
	}
	return normalizeUnit(vector), nil
}

// applyIntentSort reorders already-ranked candidates when the intent
// asks for a non-relevance ordering. Sorting is stable, so relevance
// order survives as the tie-break.
func (r *Retriever) applyIntentSort(candidates []*core.Candidate, order core.SortOrder) {
	switch order {
	case core.SortPriceAsc:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Product.Price < candidates[j].Product.Price
		})
	case core.SortPriceDesc:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Product.Price > candidates[j].Product.Price
		})
	case core.SortLatest:
		// Later corpus positions are newer catalog entries.
		sort.SliceStable(candidates, func(i, j int) bool {
			return r.docOf[candidates[i].Product.Id] > r.docOf[candidates[j].Product.Id]
		})
	}
}

func normalizeTopK(topK int) int {
	if topK <= 0 {
		return DefaultTopK
	}
	return topK
}
