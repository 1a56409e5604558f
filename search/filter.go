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
	"strings"

	"github.com/poiesic/findit/core"
)

// eligibleDocs returns the corpus positions that pass the intent's
// structured filters, in corpus order. With empty filters every
// position is eligible. An empty result is a valid outcome, not an
// error: scoring then produces an empty candidate list.
func eligibleDocs(products []*core.ProductRecord, filters core.Filters) []int {
	docs := make([]int, 0, len(products))
	for i, product := range products {
		if passesFilters(product, filters) {
			docs = append(docs, i)
		}
	}
	return docs
}

func passesFilters(product *core.ProductRecord, filters core.Filters) bool {
	if filters.Category != "" &&
		!strings.EqualFold(product.Category, filters.Category) {
		return false
	}
	if filters.PriceMin > 0 && product.Price < filters.PriceMin {
		return false
	}
	if filters.PriceMax > 0 && product.Price > filters.PriceMax {
		return false
	}
	if len(filters.Negatives) > 0 {
		text := strings.ToLower(product.LexicalText())
		for _, negative := range filters.Negatives {
			negative = strings.ToLower(strings.TrimSpace(negative))
			if negative != "" && strings.Contains(text, negative) {
				return false
			}
		}
	}
	return true
}
