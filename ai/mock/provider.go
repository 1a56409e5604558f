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


package mock

import "github.com/poiesic/findit/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder, understander, scorer, and selector instances.
type MockProvider struct {
	embedder     *MockEmbedder
	understander *MockUnderstander
	scorer       *MockPairwiseScorer
	selector     *MockSelector
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use the GetMockX accessors to reach concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:     NewMockEmbedder(),
		understander: NewMockUnderstander(),
		scorer:       NewMockPairwiseScorer(),
		selector:     NewMockSelector(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(
	embedder *MockEmbedder,
	understander *MockUnderstander,
	scorer *MockPairwiseScorer,
	selector *MockSelector,
) ai.AIProvider {
	return &MockProvider{
		embedder:     embedder,
		understander: understander,
		scorer:       scorer,
		selector:     selector,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryUnderstander returns the mock understander.
func (p *MockProvider) QueryUnderstander() ai.QueryUnderstander {
	return p.understander
}

// PairwiseScorer returns the mock scorer.
func (p *MockProvider) PairwiseScorer() ai.PairwiseScorer {
	return p.scorer
}

// Selector returns the mock selector.
func (p *MockProvider) Selector() ai.Selector {
	return p.selector
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockUnderstander returns the underlying mock understander for test assertions.
func (p *MockProvider) GetMockUnderstander() *MockUnderstander {
	return p.understander
}

// GetMockScorer returns the underlying mock scorer for test assertions.
func (p *MockProvider) GetMockScorer() *MockPairwiseScorer {
	return p.scorer
}

// GetMockSelector returns the underlying mock selector for test assertions.
func (p *MockProvider) GetMockSelector() *MockSelector {
	return p.selector
}
