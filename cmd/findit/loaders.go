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


package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/poiesic/findit/core"
)

// productJSON is the corpus file schema.
type productJSON struct {
	ID          uint64   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Location    string   `json:"location,omitempty"`
	Price       int64    `json:"price,omitempty"`
}

// intentJSON is the optional expected-intent schema inside a case.
type intentJSON struct {
	Keywords  []string `json:"keywords"`
	Category  string   `json:"category,omitempty"`
	PriceMin  int64    `json:"price_min,omitempty"`
	PriceMax  int64    `json:"price_max,omitempty"`
	Negatives []string `json:"negatives,omitempty"`
	Sort      string   `json:"sort,omitempty"`
	Expansion []string `json:"expansion,omitempty"`
}

// caseJSON is the ground-truth file schema.
type caseJSON struct {
	Query          string      `json:"query"`
	Scenario       string      `json:"scenario,omitempty"`
	Difficulty     string      `json:"difficulty,omitempty"`
	TruthIDs       []uint64    `json:"truth_ids,omitempty"`
	Hint           bool        `json:"hint,omitempty"`
	ExpectedIntent *intentJSON `json:"expected_intent,omitempty"`
}

// loadCorpus reads a product corpus from a JSON file. Records without
// an explicit id get a deterministic content-derived one.
func loadCorpus(path string) ([]*core.ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	var rows []productJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}

	products := make([]*core.ProductRecord, len(rows))
	for i, row := range rows {
		record := &core.ProductRecord{
			Id:          core.ID(row.ID),
			Name:        row.Name,
			Description: row.Description,
			Category:    row.Category,
			Keywords:    row.Keywords,
			Location:    row.Location,
			Price:       row.Price,
		}
		if record.Id == 0 {
			record.Id = core.IDFromContent(record.Name + "\x00" + record.Description)
		}
		products[i] = record
	}
	return products, nil
}

// loadCases reads evaluation cases from a JSON file.
func loadCases(path string) ([]*core.GroundTruthCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases: %w", err)
	}

	var rows []caseJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse cases: %w", err)
	}

	cases := make([]*core.GroundTruthCase, len(rows))
	for i, row := range rows {
		c := &core.GroundTruthCase{
			Query:      row.Query,
			Scenario:   row.Scenario,
			Difficulty: row.Difficulty,
			Hint:       row.Hint,
		}
		for _, id := range row.TruthIDs {
			c.TruthIDs = append(c.TruthIDs, core.ID(id))
		}
		if row.ExpectedIntent != nil {
			keywords := row.ExpectedIntent.Keywords
			if keywords == nil {
				keywords = []string{}
			}
			c.ExpectedIntent = &core.Intent{
				IsSearch: true,
				Keywords: keywords,
				Filters: core.Filters{
					Category:  row.ExpectedIntent.Category,
					PriceMin:  row.ExpectedIntent.PriceMin,
					PriceMax:  row.ExpectedIntent.PriceMax,
					Negatives: row.ExpectedIntent.Negatives,
				},
				Sort:      core.ParseSortOrder(row.ExpectedIntent.Sort),
				Expansion: row.ExpectedIntent.Expansion,
			}
		}
		cases[i] = c
	}
	return cases, nil
}
