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

	"github.com/poiesic/findit/core"
)

// Reranker reorders retrieval candidates with a second-stage model.
// Implementations never fail on provider errors: they degrade to the
// input order and flag the result as a fallback instead.
type Reranker interface {
	Rerank(ctx context.Context, query string, intent *core.Intent, candidates []*core.Candidate) (*core.RankedResult, error)
}

// identityResult returns the candidates unchanged, flagged as a fallback
// when a reason is given.
func identityResult(candidates []*core.Candidate, reason string) *core.RankedResult {
	result := &core.RankedResult{
		Candidates: candidates,
	}
	if reason != "" {
		result.Fallback = true
		result.FallbackReason = reason
	}
	return result
}
