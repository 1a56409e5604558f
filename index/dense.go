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


package index

import "math"

// DenseIndex holds one unit-normalized embedding per corpus position.
// A position may have no vector when embedding the product failed; such
// documents stay searchable lexically but are invisible to dense
// scoring.
type DenseIndex struct {
	vectors    [][]float32
	dimensions int
}

// newDenseIndex wraps a position-aligned vector matrix. Entries may be
// nil for degraded documents.
func newDenseIndex(vectors [][]float32) *DenseIndex {
	idx := &DenseIndex{vectors: vectors}
	for _, v := range vectors {
		if len(v) > 0 {
			idx.dimensions = len(v)
			break
		}
	}
	return idx
}

// Vector returns the unit vector at the given corpus position, or nil
// if the document has no embedding.
func (idx *DenseIndex) Vector(doc int) []float32 {
	return idx.vectors[doc]
}

// HasVector reports whether the document at the position has an embedding.
func (idx *DenseIndex) HasVector(doc int) bool {
	return len(idx.vectors[doc]) > 0
}

// DocCount returns the number of positions, embedded or not.
func (idx *DenseIndex) DocCount() int {
	return len(idx.vectors)
}

// EmbeddedCount returns the number of positions with an embedding.
func (idx *DenseIndex) EmbeddedCount() int {
	count := 0
	for _, v := range idx.vectors {
		if len(v) > 0 {
			count++
		}
	}
	return count
}

// Dimensions returns the embedding dimensionality, or 0 when nothing embedded.
func (idx *DenseIndex) Dimensions() int {
	return idx.dimensions
}

// normalizeVector scales a vector to unit length in place and returns
// it. A zero vector is returned unchanged.
func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		return v
	}
	norm := float32(1.0 / math.Sqrt(sumSquares))
	for i := range v {
		v[i] *= norm
	}
	return v
}
