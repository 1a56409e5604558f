// Package ai provides abstractions for the model services used in findit.
//
// This package defines interfaces for the external capabilities the
// retrieval engine consumes: text embeddings, query understanding,
// pairwise relevance scoring, and generative selection. It follows the
// dependency inversion principle, allowing the core retrieval and
// ranking logic to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around four capability interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - QueryUnderstander: Converts a raw query into a structured Intent
//   - PairwiseScorer: Scores a (query, candidate) pair jointly
//   - Selector: Reorders a candidate set and picks a single best match
//
// AIProvider aggregates the four for convenient initialization. There is
// no ambient global client: a provider is constructed explicitly by the
// caller and passed into the components that need it, and torn down with
// Close.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Failure Contract
//
// Providers are blocking I/O. Expected failures are reported as wrapped
// sentinel errors from the core package so callers can degrade instead of
// aborting: core.ErrQueryUnderstanding triggers the deterministic
// fallback Intent, core.ErrRerankParse triggers the identity-order
// fallback, and core.ErrEmbedding degrades a record to lexical-only
// scoring.
//
// # Usage Example
//
//	// Production usage with OpenAI provider
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "bath mat")
//	intent, err := provider.QueryUnderstander().Understand(ctx, "cheap bath mat under 5000")
//
//	// Testing usage with mocks
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test text")
package ai
