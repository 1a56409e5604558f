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


package eval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/rerank"
	"github.com/poiesic/findit/search"
)

// Method names a retrieval strategy under evaluation.
type Method string

const (
	MethodLexical Method = "lexical"
	MethodDense   Method = "dense"
	MethodHybrid  Method = "hybrid"
	// MethodReranked reranks the hybrid ranking before measuring.
	// Requires WithReranker.
	MethodReranked Method = "reranked"
)

// DefaultCutoffs are the ranking depths measured when none are configured.
var DefaultCutoffs = []int{1, 3, 5, 10}

// DefaultMethods are the strategies measured when none are configured.
var DefaultMethods = []Method{MethodLexical, MethodDense, MethodHybrid}

// Evaluator measures retrieval quality against a labeled case set.
//
// Every case lands in exactly one bucket: scored (it contributed to
// the metrics) or unscored (no truth ids, invalid, or a search failure
// while running it). One bad case never aborts the run.
type Evaluator struct {
	retriever *search.Retriever
	reranker  rerank.Reranker
	cutoffs   []int
	methods   []Method
	logger    *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithCutoffs sets the ranking depths to measure.
// Default is 1, 3, 5, 10.
func WithCutoffs(cutoffs ...int) Option {
	return func(e *Evaluator) error {
		for _, k := range cutoffs {
			if k <= 0 {
				return fmt.Errorf("%w: cutoff %d", ErrInvalidCutoff, k)
			}
		}
		if len(cutoffs) > 0 {
			e.cutoffs = cutoffs
		}
		return nil
	}
}

// WithMethods sets the retrieval strategies to measure.
// Default is lexical, dense, and hybrid.
func WithMethods(methods ...Method) Option {
	return func(e *Evaluator) error {
		for _, method := range methods {
			switch method {
			case MethodLexical, MethodDense, MethodHybrid, MethodReranked:
			default:
				return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
			}
		}
		if len(methods) > 0 {
			e.methods = methods
		}
		return nil
	}
}

// WithReranker sets the reranker scored by the reranked method.
func WithReranker(reranker rerank.Reranker) Option {
	return func(e *Evaluator) error {
		if reranker == nil {
			return ErrRerankerRequired
		}
		e.reranker = reranker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEvaluator creates an evaluator over a retriever.
func NewEvaluator(retriever *search.Retriever, opts ...Option) (*Evaluator, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	e := &Evaluator{
		retriever: retriever,
		cutoffs:   DefaultCutoffs,
		methods:   DefaultMethods,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.reranker == nil {
		for _, method := range e.methods {
			if method == MethodReranked {
				return nil, fmt.Errorf("%w: method %s", ErrRerankerRequired, MethodReranked)
			}
		}
	}

	e.logger = e.logger.With("component", "evaluator")
	return e, nil
}

// Run evaluates every case and aggregates metrics per method per
// cutoff. The returned report always satisfies
// ScoredCases + UnscoredCases == TotalCases.
func (e *Evaluator) Run(ctx context.Context, cases []*core.GroundTruthCase) (*Report, error) {
	report := newReport(e.methods, e.cutoffs)
	report.TotalCases = len(cases)

	maxCutoff := 0
	for _, k := range e.cutoffs {
		if k > maxCutoff {
			maxCutoff = k
		}
	}

	for i, c := range cases {
		outcome, err := e.runCase(ctx, c, maxCutoff)
		if err != nil {
			e.logger.Warn("case excluded from scoring",
				"case", i,
				"err", fmt.Errorf("%w: %w", core.ErrEvaluationData, err))
			report.UnscoredCases++
			report.Failures = append(report.Failures, CaseFailure{
				Query:  caseQuery(c),
				Reason: err.Error(),
			})
			continue
		}
		if outcome == nil {
			// Valid case without truth ids.
			report.UnscoredCases++
			continue
		}

		report.ScoredCases++
		report.absorb(outcome, c)
	}

	report.finalize()

	e.logger.Info("evaluation complete",
		"total", report.TotalCases,
		"scored", report.ScoredCases,
		"unscored", report.UnscoredCases)
	return report, nil
}

// caseOutcome holds one scored case's per-method rankings and truth set.
type caseOutcome struct {
	rankings map[Method][]core.ID
	truth    map[core.ID]bool
	hint     bool
}

// runCase executes every configured method for one case. A nil outcome
// with a nil error means the case is valid but carries no truth ids.
func (e *Evaluator) runCase(ctx context.Context, c *core.GroundTruthCase, depth int) (*caseOutcome, error) {
	if err := core.ValidateGroundTruthCase(c); err != nil {
		return nil, err
	}
	if len(c.TruthIDs) == 0 {
		return nil, nil
	}

	intent := c.ExpectedIntent
	if intent == nil {
		intent = core.FallbackIntent(c.Query)
	}

	outcome := &caseOutcome{
		rankings: make(map[Method][]core.ID, len(e.methods)),
		truth:    make(map[core.ID]bool, len(c.TruthIDs)),
		hint:     c.Hint,
	}
	for _, id := range c.TruthIDs {
		outcome.truth[id] = true
	}

	for _, method := range e.methods {
		var candidates []*core.Candidate
		var err error
		switch method {
		case MethodLexical:
			candidates, err = e.retriever.SearchLexical(ctx, intent, depth)
		case MethodDense:
			candidates, err = e.retriever.SearchDense(ctx, c.Query, intent, depth)
		case MethodHybrid:
			candidates, err = e.retriever.SearchHybrid(ctx, c.Query, intent, depth)
		case MethodReranked:
			candidates, err = e.rerankedCandidates(ctx, c.Query, intent, depth)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownMethod, method)
		}
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", method, err)
		}

		ids := make([]core.ID, len(candidates))
		for i, candidate := range candidates {
			ids[i] = candidate.Product.Id
		}
		outcome.rankings[method] = ids
	}

	return outcome, nil
}

// rerankedCandidates reranks the hybrid ranking at the requested depth.
// Reranker degradations (identity fallback) still count as scored; only
// hard retrieval errors exclude the case.
func (e *Evaluator) rerankedCandidates(ctx context.Context, query string, intent *core.Intent, depth int) ([]*core.Candidate, error) {
	candidates, err := e.retriever.SearchHybrid(ctx, query, intent, depth)
	if err != nil {
		return nil, err
	}

	ranked, err := e.reranker.Rerank(ctx, query, intent, candidates)
	if err != nil {
		return nil, err
	}
	return ranked.Candidates, nil
}

func caseQuery(c *core.GroundTruthCase) string {
	if c == nil {
		return ""
	}
	return c.Query
}
