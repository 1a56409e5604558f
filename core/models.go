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

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog products and derived records.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ProductRecord represents a single catalog item.
// Identity is the Id field; names are not guaranteed unique.
type ProductRecord struct {
	Id          ID
	Name        string
	Description string
	Category    string
	Keywords    []string
	Location    string // Physical store location, may be empty
	Price       int64  // Price in the smallest currency unit; 0 means unpriced
}

// LexicalText returns the text indexed for keyword (BM25) retrieval.
func (p *ProductRecord) LexicalText() string {
	parts := []string{p.Name, p.Description, p.Category}
	parts = append(parts, p.Keywords...)
	return strings.Join(parts, " ")
}

// EmbedText returns the text embedded for dense retrieval.
func (p *ProductRecord) EmbedText() string {
	parts := []string{p.Name, p.Category, p.Description}
	parts = append(parts, p.Keywords...)
	return strings.Join(parts, " ")
}

// SortOrder expresses the result ordering a query asks for.
type SortOrder int

const (
	// SortRelevance orders by retrieval score.
	SortRelevance SortOrder = iota + 1
	// SortPriceAsc orders by ascending price.
	SortPriceAsc
	// SortPriceDesc orders by descending price.
	SortPriceDesc
	// SortLatest orders by recency of the catalog record.
	SortLatest
)

// String returns the wire name of the sort order.
func (s SortOrder) String() string {
	switch s {
	case SortRelevance:
		return "relevance"
	case SortPriceAsc:
		return "price_asc"
	case SortPriceDesc:
		return "price_desc"
	case SortLatest:
		return "latest"
	default:
		return "unknown"
	}
}

// ParseSortOrder converts a wire name into a SortOrder.
// Unrecognized names fall back to SortRelevance so a sloppy provider
// response never produces an invalid Intent.
func ParseSortOrder(s string) SortOrder {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "price_asc", "price_ascending", "cheap":
		return SortPriceAsc
	case "price_desc", "price_descending":
		return SortPriceDesc
	case "latest", "newest":
		return SortLatest
	default:
		return SortRelevance
	}
}

// Filters restrict the candidate universe before scoring.
// Zero values mean "no restriction".
type Filters struct {
	Category  string
	PriceMin  int64
	PriceMax  int64
	Negatives []string // Free-form terms the user excluded ("no plastic")
}

// IsEmpty reports whether the filter set restricts nothing.
func (f Filters) IsEmpty() bool {
	return f.Category == "" && f.PriceMin == 0 && f.PriceMax == 0 && len(f.Negatives) == 0
}

// Intent is the structured understanding of a raw query.
// An Intent is always well-formed; a failed extraction yields the
// deterministic FallbackIntent, never a nil or partial value.
type Intent struct {
	IsSearch  bool
	Keywords  []string
	Filters   Filters
	Sort      SortOrder
	Expansion []string // Synonym terms appended to lexical retrieval
}

// FallbackIntent returns the deterministic Intent used when query
// understanding fails: whitespace-tokenized keywords, no filters,
// relevance sort, no expansion terms.
func FallbackIntent(query string) *Intent {
	return &Intent{
		IsSearch: true,
		Keywords: strings.Fields(query),
		Sort:     SortRelevance,
	}
}

// Candidate pairs a product with its per-strategy retrieval scores.
// Lexical, Dense, and Hybrid are normalized to [0,1]; RawLexical and
// RawDense keep the pre-normalization values for debugging.
type Candidate struct {
	Product    *ProductRecord
	Lexical    float64
	Dense      float64
	Hybrid     float64
	RawLexical float64
	RawDense   float64
}

// TopPick is the single best match selected by a reranker, with the
// natural-language rationale the selector gave for it.
type TopPick struct {
	Product   *ProductRecord
	Rationale string
}

// RankedResult is an ordered candidate list, most relevant first.
// Fallback is set when a reranking stage degraded to its input order.
type RankedResult struct {
	Candidates     []*Candidate
	TopPick        *TopPick
	Fallback       bool
	FallbackReason string
}

// IDs returns the product ids of the candidates in rank order.
func (r *RankedResult) IDs() []ID {
	ids := make([]ID, len(r.Candidates))
	for i, c := range r.Candidates {
		ids[i] = c.Product.Id
	}
	return ids
}

// GroundTruthCase is a labeled evaluation case supplied by an external
// ground-truth corpus. TruthIDs may be empty (the case is then counted
// as unscored) or hint-quality (partial).
type GroundTruthCase struct {
	Query          string
	Scenario       string
	Difficulty     string
	TruthIDs       []ID
	Hint           bool // True when TruthIDs is partial "hint" quality
	ExpectedIntent *Intent
}

// ProductVector is a cached dense embedding for one product.
// ContentHash is the BLAKE2b hash of the embedded text; it lets an
// index rebuild skip records whose source text has not changed.
type ProductVector struct {
	ProductID   ID
	ContentHash ID
	Values      []float32
}
