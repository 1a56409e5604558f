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


package search

import "errors"

var (
	// ErrIndexRequired is returned when constructing a retriever without an index.
	ErrIndexRequired = errors.New("index is required")

	// ErrEmbedderRequired is returned when constructing a retriever without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidAlpha is returned when the fusion weight is outside [0, 1].
	ErrInvalidAlpha = errors.New("fusion alpha must be in [0, 1]")

	// ErrInvalidBM25Params is returned when k1 or b is out of range.
	ErrInvalidBM25Params = errors.New("invalid BM25 parameters")
)
