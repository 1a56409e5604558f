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

	"github.com/poiesic/findit/core"
)

// MockUnderstander is a test double for ai.QueryUnderstander.
// By default it returns the same Intent the deterministic fallback
// produces, which keeps retrieval tests independent of any model.
type MockUnderstander struct {
	// UnderstandFunc overrides understanding behavior.
	// If nil, uses default deterministic behavior.
	UnderstandFunc func(ctx context.Context, query string) (*core.Intent, error)

	callCount int
}

// NewMockUnderstander creates a mock understander with default behavior.
func NewMockUnderstander() *MockUnderstander {
	return &MockUnderstander{}
}

// Understand returns a whitespace-tokenized Intent or the injected behavior.
func (m *MockUnderstander) Understand(ctx context.Context, query string) (*core.Intent, error) {
	m.callCount++

	if m.UnderstandFunc != nil {
		return m.UnderstandFunc(ctx, query)
	}

	return core.FallbackIntent(query), nil
}

// CallCount returns the number of times Understand was called.
func (m *MockUnderstander) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockUnderstander) Reset() {
	m.callCount = 0
	m.UnderstandFunc = nil
}
