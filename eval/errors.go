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

import "errors"

var (
	// ErrRetrieverRequired is returned when constructing an evaluator
	// without a retriever.
	ErrRetrieverRequired = errors.New("retriever is required")

	// ErrInvalidCutoff is returned for non-positive ranking depths.
	ErrInvalidCutoff = errors.New("cutoff must be greater than 0")

	// ErrUnknownMethod is returned when configuring a method name the
	// evaluator cannot score.
	ErrUnknownMethod = errors.New("unknown evaluation method")

	// ErrRerankerRequired is returned when the reranked method is
	// configured without a reranker.
	ErrRerankerRequired = errors.New("reranker is required")
)
