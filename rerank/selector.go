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
	"time"

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/core"
)

// SelectorReranker reranks with a generative selector that returns a
// full preferred ordering plus a single top pick with a rationale.
//
// The selector's output is applied defensively: ids the selector
// invented are dropped, ids it omitted are appended in retrieval
// order, and a response that cannot be obtained at all degrades the
// pass to the input order.
type SelectorReranker struct {
	selector ai.Selector
	timeout  time.Duration
	logger   *slog.Logger
}

var _ Reranker = (*SelectorReranker)(nil)

// SelectorOption configures a SelectorReranker.
type SelectorOption func(*SelectorReranker) error

// WithSelectorTimeout bounds each selection call.
// Default is 15 seconds.
func WithSelectorTimeout(timeout time.Duration) SelectorOption {
	return func(sr *SelectorReranker) error {
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		sr.timeout = timeout
		return nil
	}
}

// WithSelectorLogger sets a custom logger.
// Default is slog.Default().
func WithSelectorLogger(logger *slog.Logger) SelectorOption {
	return func(sr *SelectorReranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		sr.logger = logger
		return nil
	}
}

// NewSelectorReranker creates a generative selection reranker.
func NewSelectorReranker(selector ai.Selector, opts ...SelectorOption) (*SelectorReranker, error) {
	if selector == nil {
		return nil, ErrSelectorRequired
	}

	sr := &SelectorReranker{
		selector: selector,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(sr); err != nil {
			return nil, err
		}
	}

	sr.logger = sr.logger.With("component", "selector_reranker")
	return sr, nil
}

// Rerank asks the selector for a preferred ordering and applies it.
// The selector gets one retry; after that the input order is returned
// with the fallback flagged. Rerank never returns an empty result for
// a non-empty input.
func (sr *SelectorReranker) Rerank(ctx context.Context, query string, intent *core.Intent, candidates []*core.Candidate) (*core.RankedResult, error) {
	if len(candidates) == 0 {
		return identityResult(candidates, ""), nil
	}

	products := make([]*core.ProductRecord, len(candidates))
	for i, candidate := range candidates {
		products[i] = candidate.Product
	}

	var selection *ai.Selection
	err := core.RetryWithBackoff(ctx, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, sr.timeout)
		defer cancel()

		selected, err := sr.selector.Select(attemptCtx, query, intent, products)
		if err != nil {
			return err
		}
		selection = selected
		return nil
	}, maxAttempts, retryBaseDelay)
	if err != nil {
		sr.logger.Warn("selection failed, keeping retrieval order",
			"query", query, "err", err)
		return identityResult(candidates, err.Error()), nil
	}

	return sr.apply(candidates, selection), nil
}

// apply reorders candidates per the selection. Unknown ids are ignored
// and omitted candidates are appended in their input order.
func (sr *SelectorReranker) apply(candidates []*core.Candidate, selection *ai.Selection) *core.RankedResult {
	byID := make(map[core.ID]*core.Candidate, len(candidates))
	for _, candidate := range candidates {
		byID[candidate.Product.Id] = candidate
	}

	ranked := make([]*core.Candidate, 0, len(candidates))
	placed := make(map[core.ID]bool, len(candidates))
	for _, id := range selection.RankedIDs {
		candidate, known := byID[id]
		if !known || placed[id] {
			continue
		}
		ranked = append(ranked, candidate)
		placed[id] = true
	}
	for _, candidate := range candidates {
		if !placed[candidate.Product.Id] {
			ranked = append(ranked, candidate)
		}
	}

	result := &core.RankedResult{Candidates: ranked}

	if top, known := byID[selection.TopMatchID]; known {
		result.TopPick = &core.TopPick{
			Product:   top.Product,
			Rationale: selection.Rationale,
		}
	} else if len(ranked) > 0 {
		result.TopPick = &core.TopPick{
			Product:   ranked[0].Product,
			Rationale: selection.Rationale,
		}
	}

	return result
}
