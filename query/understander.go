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


package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/core"
)

const (
	// DefaultTimeout bounds each understanding attempt.
	DefaultTimeout = 15 * time.Second
	// retryBaseDelay is the pause before the single retry.
	retryBaseDelay = 500 * time.Millisecond
	// maxAttempts is one initial call plus one retry.
	maxAttempts = 2
)

// Understanding is the outcome of query understanding. Intent is never
// nil: when the provider fails, Intent holds the deterministic fallback
// and Degraded records why.
type Understanding struct {
	Intent         *core.Intent
	Degraded       bool
	DegradedReason string
}

// Understander turns raw queries into structured intents via an AI
// provider, degrading to the deterministic fallback when the provider
// cannot deliver one.
type Understander struct {
	provider ai.QueryUnderstander
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures an Understander.
type Option func(*Understander) error

// WithTimeout bounds each understanding attempt.
// Default is 15 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(u *Understander) error {
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		u.timeout = timeout
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(u *Understander) error {
		if logger == nil {
			logger = slog.Default()
		}
		u.logger = logger
		return nil
	}
}

// NewUnderstander creates a query understanding service.
func NewUnderstander(provider ai.QueryUnderstander, opts ...Option) (*Understander, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	u := &Understander{
		provider: provider,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}

	u.logger = u.logger.With("component", "query_understander")
	return u, nil
}

// Understand extracts a structured intent from the raw query. The
// provider gets one retry; after that the deterministic fallback intent
// is returned with the degradation recorded. Understand never fails on
// provider errors, only on an empty query.
func (u *Understander) Understand(ctx context.Context, query string) (*Understanding, error) {
	if query == "" {
		return nil, core.ErrEmptyQuery
	}

	var intent *core.Intent
	err := core.RetryWithBackoff(ctx, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, u.timeout)
		defer cancel()

		extracted, err := u.provider.Understand(attemptCtx, query)
		if err != nil {
			return err
		}
		intent = extracted
		return nil
	}, maxAttempts, retryBaseDelay)

	if err != nil {
		u.logger.Warn("query understanding degraded to fallback intent",
			"query", query, "err", err)
		return &Understanding{
			Intent:         core.FallbackIntent(query),
			Degraded:       true,
			DegradedReason: err.Error(),
		}, nil
	}

	if err := core.ValidateIntent(intent); err != nil {
		u.logger.Warn("provider returned invalid intent, using fallback",
			"query", query, "err", err)
		return &Understanding{
			Intent:         core.FallbackIntent(query),
			Degraded:       true,
			DegradedReason: err.Error(),
		}, nil
	}

	u.logger.Debug("query understood",
		"query", query,
		"keywords", intent.Keywords,
		"sort", intent.Sort.String())
	return &Understanding{Intent: intent}, nil
}
