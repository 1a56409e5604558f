package openai

import (
	"log/slog"

	"github.com/poiesic/findit/ai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
// It manages the embedder, understander, scorer, and selector instances.
type Provider struct {
	config       *ai.Config
	embedder     *Embedder
	understander *QueryUnderstander
	scorer       *PairwiseScorer
	selector     *Selector
	logger       *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	understander, err := newQueryUnderstander(config)
	if err != nil {
		return nil, err
	}

	scorer, err := newPairwiseScorer(config)
	if err != nil {
		return nil, err
	}

	selector, err := newSelector(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:       config,
		embedder:     embedder,
		understander: understander,
		scorer:       scorer,
		selector:     selector,
		logger:       slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryUnderstander returns the query understanding service.
func (p *Provider) QueryUnderstander() ai.QueryUnderstander {
	return p.understander
}

// PairwiseScorer returns the pairwise relevance scoring service.
func (p *Provider) PairwiseScorer() ai.PairwiseScorer {
	return p.scorer
}

// Selector returns the generative selection service.
func (p *Provider) Selector() ai.Selector {
	return p.selector
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
