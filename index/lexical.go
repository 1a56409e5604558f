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

// Posting records one document's term occurrence in the inverted index.
// Doc is the document's position in corpus order, not its product id.
type Posting struct {
	Doc int
	TF  int
}

// LexicalIndex is an in-memory inverted index over the corpus.
// Postings lists are kept in corpus order so downstream ranking can
// break score ties deterministically.
type LexicalIndex struct {
	postings  map[string][]Posting
	docLens   []int
	avgDocLen float64
	tokenize  Tokenizer
}

// newLexicalIndex builds the inverted index from pre-extracted document
// texts, one per corpus position.
func newLexicalIndex(texts []string, tokenize Tokenizer) *LexicalIndex {
	idx := &LexicalIndex{
		postings: make(map[string][]Posting),
		docLens:  make([]int, len(texts)),
		tokenize: tokenize,
	}

	totalLen := 0
	for doc, text := range texts {
		terms := tokenize(text)
		idx.docLens[doc] = len(terms)
		totalLen += len(terms)

		counts := make(map[string]int, len(terms))
		for _, term := range terms {
			counts[term]++
		}
		for term, tf := range counts {
			idx.postings[term] = append(idx.postings[term], Posting{Doc: doc, TF: tf})
		}
	}

	if len(texts) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(texts))
	}
	return idx
}

// Postings returns the postings list for a term, or nil if the term
// doesn't occur in the corpus.
func (idx *LexicalIndex) Postings(term string) []Posting {
	return idx.postings[term]
}

// DocLen returns the token count of the document at the given corpus position.
func (idx *LexicalIndex) DocLen(doc int) int {
	return idx.docLens[doc]
}

// AvgDocLen returns the mean document length across the corpus.
func (idx *LexicalIndex) AvgDocLen() float64 {
	return idx.avgDocLen
}

// DocCount returns the number of indexed documents.
func (idx *LexicalIndex) DocCount() int {
	return len(idx.docLens)
}

// TermCount returns the number of distinct terms in the index.
func (idx *LexicalIndex) TermCount() int {
	return len(idx.postings)
}

// Tokenize applies the index's tokenizer to query text.
func (idx *LexicalIndex) Tokenize(text string) []string {
	return idx.tokenize(text)
}
