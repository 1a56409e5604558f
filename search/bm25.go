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

import (
	"math"

	"github.com/poiesic/findit/index"
)

const (
	// DefaultK1 is the default BM25 term-frequency saturation parameter.
	DefaultK1 = 1.5
	// DefaultB is the default BM25 length-normalization parameter.
	DefaultB = 0.75
)

// bm25Scores computes BM25 scores for the query terms over every
// document position in the index. Documents matching no term score
// exactly 0. IDF uses the smoothed form log(1+(N-df+0.5)/(df+0.5)),
// which stays positive even for terms present in every document.
func bm25Scores(idx *index.LexicalIndex, terms []string, k1, b float64) []float64 {
	scores := make([]float64, idx.DocCount())
	n := float64(idx.DocCount())
	avgdl := idx.AvgDocLen()

	for _, term := range terms {
		postings := idx.Postings(term)
		if len(postings) == 0 {
			continue
		}

		df := float64(len(postings))
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))

		for _, posting := range postings {
			tf := float64(posting.TF)
			docLen := float64(idx.DocLen(posting.Doc))

			denom := tf + k1*(1-b+b*docLen/avgdl)
			scores[posting.Doc] += idf * (tf * (k1 + 1)) / denom
		}
	}
	return scores
}
