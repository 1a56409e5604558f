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


package core

import "errors"

// Engine failure taxonomy. Only ErrIndexBuild is fatal; the rest mark
// degraded states that callers handle locally without aborting a batch.
var (
	// ErrIndexBuild indicates the corpus snapshot is empty or invalid.
	// Indexing aborts on this error.
	ErrIndexBuild = errors.New("index build failed")

	// ErrEmbedding indicates the embedding provider was unreachable or
	// returned a malformed vector. The affected record degrades to
	// lexical-only scoring.
	ErrEmbedding = errors.New("embedding failed")

	// ErrQueryUnderstanding indicates the text-understanding provider
	// failed or returned unparseable output. Callers use the
	// deterministic fallback Intent.
	ErrQueryUnderstanding = errors.New("query understanding failed")

	// ErrRerankParse indicates the generative selector output could not
	// be parsed. The reranker falls back to its input order.
	ErrRerankParse = errors.New("rerank response unparseable")

	// ErrEvaluationData indicates an evaluation case carries no ground
	// truth. The case is counted as unscored, never dropped silently.
	ErrEvaluationData = errors.New("evaluation case has no ground truth")
)

// Domain validation errors
var (
	// ErrInvalidProduct indicates a ProductRecord failed validation.
	ErrInvalidProduct = errors.New("invalid product record")

	// ErrEmptyName indicates the product Name field is empty.
	ErrEmptyName = errors.New("product name cannot be empty")

	// ErrZeroID indicates a product has no id assigned.
	ErrZeroID = errors.New("product id cannot be zero")

	// ErrDuplicateID indicates two corpus records share an id.
	ErrDuplicateID = errors.New("duplicate product id")

	// ErrInvalidIntent indicates an Intent failed validation.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrInvalidSortOrder indicates an invalid SortOrder value.
	ErrInvalidSortOrder = errors.New("invalid sort order")

	// ErrEmptyQuery indicates a query or evaluation case has no query text.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
