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

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/core"
)

// MockSelector is a test double for ai.Selector.
// By default it keeps the candidate order and picks the first candidate,
// with a fixed rationale.
type MockSelector struct {
	// SelectFunc overrides selection behavior.
	// If nil, uses default deterministic behavior.
	SelectFunc func(ctx context.Context, query string, intent *core.Intent, candidates []*core.ProductRecord) (*ai.Selection, error)

	callCount int
}

// NewMockSelector creates a mock selector with default behavior.
func NewMockSelector() *MockSelector {
	return &MockSelector{}
}

// Select keeps input order and picks the first candidate, or applies the
// injected behavior.
func (m *MockSelector) Select(ctx context.Context, query string, intent *core.Intent, candidates []*core.ProductRecord) (*ai.Selection, error) {
	m.callCount++

	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, query, intent, candidates)
	}

	selection := &ai.Selection{
		RankedIDs: make([]core.ID, len(candidates)),
		Rationale: "mock selection",
	}
	for i, c := range candidates {
		selection.RankedIDs[i] = c.Id
	}
	if len(candidates) > 0 {
		selection.TopMatchID = candidates[0].Id
	}
	return selection, nil
}

// CallCount returns the number of times Select was called.
func (m *MockSelector) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockSelector) Reset() {
	m.callCount = 0
	m.SelectFunc = nil
}
