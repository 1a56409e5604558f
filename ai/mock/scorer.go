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

import (
	"context"
	"strings"
)

// MockPairwiseScorer is a test double for ai.PairwiseScorer.
// By default it scores a pair by counting query tokens that appear in
// the candidate text, which is deterministic and order-free.
type MockPairwiseScorer struct {
	// ScoreFunc overrides scoring behavior.
	// If nil, uses default deterministic behavior.
	ScoreFunc func(ctx context.Context, query, candidateText string) (float64, error)

	callCount int
}

// NewMockPairwiseScorer creates a mock scorer with default behavior.
func NewMockPairwiseScorer() *MockPairwiseScorer {
	return &MockPairwiseScorer{}
}

// Score counts overlapping tokens or applies the injected behavior.
func (m *MockPairwiseScorer) Score(ctx context.Context, query, candidateText string) (float64, error) {
	m.callCount++

	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, query, candidateText)
	}

	haystack := strings.ToLower(candidateText)
	var score float64
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(haystack, token) {
			score++
		}
	}
	return score, nil
}

// CallCount returns the number of times Score was called.
func (m *MockPairwiseScorer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockPairwiseScorer) Reset() {
	m.callCount = 0
	m.ScoreFunc = nil
}
