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


package rerank

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/core"
)

const (
	// DefaultTimeout bounds each provider call.
	DefaultTimeout = 15 * time.Second

	retryBaseDelay = 500 * time.Millisecond
	maxAttempts    = 2
)

// CrossEncoder reranks candidates by scoring each (query, candidate)
// pair independently and sorting by the scores. Ties keep the input
// order. Any pair that cannot be scored after a retry degrades the
// whole pass to the input order.
type CrossEncoder struct {
	scorer  ai.PairwiseScorer
	timeout time.Duration
	logger  *slog.Logger
}

var _ Reranker = (*CrossEncoder)(nil)

// CrossEncoderOption configures a CrossEncoder.
type CrossEncoderOption func(*CrossEncoder) error

// WithCrossEncoderTimeout bounds each scoring call.
// Default is 15 seconds.
func WithCrossEncoderTimeout(timeout time.Duration) CrossEncoderOption {
	return func(ce *CrossEncoder) error {
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		ce.timeout = timeout
		return nil
	}
}

// WithCrossEncoderLogger sets a custom logger.
// Default is slog.Default().
func WithCrossEncoderLogger(logger *slog.Logger) CrossEncoderOption {
	return func(ce *CrossEncoder) error {
		if logger == nil {
			logger = slog.Default()
		}
		ce.logger = logger
		return nil
	}
}

// NewCrossEncoder creates a pairwise-scoring reranker.
func NewCrossEncoder(scorer ai.PairwiseScorer, opts ...CrossEncoderOption) (*CrossEncoder, error) {
	if scorer == nil {
		return nil, ErrScorerRequired
	}

	ce := &CrossEncoder{
		scorer:  scorer,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(ce); err != nil {
			return nil, err
		}
	}

	ce.logger = ce.logger.With("component", "cross_encoder")
	return ce, nil
}

// Rerank scores every candidate against the query and sorts by score
// descending. The sort is stable, so equal scores keep retrieval order.
func (ce *CrossEncoder) Rerank(ctx context.Context, query string, intent *core.Intent, candidates []*core.Candidate) (*core.RankedResult, error) {
	if len(candidates) == 0 {
		return identityResult(candidates, ""), nil
	}

	scores := make([]float64, len(candidates))
	for i, candidate := range candidates {
		text := candidate.Product.LexicalText()

		var score float64
		err := core.RetryWithBackoff(ctx, func() error {
			attemptCtx, cancel := context.WithTimeout(ctx, ce.timeout)
			defer cancel()

			scored, err := ce.scorer.Score(attemptCtx, query, text)
			if err != nil {
				return err
			}
			score = scored
			return nil
		}, maxAttempts, retryBaseDelay)
		if err != nil {
			ce.logger.Warn("pairwise scoring failed, keeping retrieval order",
				"product_id", candidate.Product.Id, "err", err)
			return identityResult(candidates, err.Error()), nil
		}
		scores[i] = score
	}

	ranked := make([]*core.Candidate, len(candidates))
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	for rank, i := range order {
		ranked[rank] = candidates[i]
	}

	return &core.RankedResult{Candidates: ranked}, nil
}
