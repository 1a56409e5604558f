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

import "fmt"

// ValidateProductRecord validates a ProductRecord according to domain rules.
//
// Validation rules:
//   - Id must be non-zero
//   - Name must not be empty
//
// NOT validated:
//   - Description, Keywords, Location, Price (all optional)
func ValidateProductRecord(record *ProductRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidProduct)
	}

	if record.Id == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrZeroID)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptyName)
	}

	return nil
}

// ValidateCorpus validates a corpus snapshot: every record must be valid
// and ids must be unique across the snapshot.
func ValidateCorpus(records []*ProductRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: empty corpus", ErrIndexBuild)
	}

	seen := make(map[ID]bool, len(records))
	for _, record := range records {
		if err := ValidateProductRecord(record); err != nil {
			return fmt.Errorf("%w: %w", ErrIndexBuild, err)
		}
		if seen[record.Id] {
			return fmt.Errorf("%w: %w: %d", ErrIndexBuild, ErrDuplicateID, record.Id)
		}
		seen[record.Id] = true
	}

	return nil
}

// ValidateIntent validates an Intent according to domain rules.
//
// Validation rules:
//   - Sort must be a valid SortOrder
//   - Keywords must not be nil (empty is allowed for non-search intents)
func ValidateIntent(intent *Intent) error {
	if intent == nil {
		return fmt.Errorf("%w: intent is nil", ErrInvalidIntent)
	}

	if err := ValidateSortOrder(intent.Sort); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}

	if intent.Keywords == nil {
		return fmt.Errorf("%w: keywords are nil", ErrInvalidIntent)
	}

	return nil
}

// ValidateSortOrder validates that a SortOrder has a valid value.
func ValidateSortOrder(sort SortOrder) error {
	switch sort {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortLatest:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidSortOrder, sort)
	}
}

// ValidateGroundTruthCase validates an evaluation case. Cases without
// truth ids are valid; the evaluator counts them as unscored.
func ValidateGroundTruthCase(c *GroundTruthCase) error {
	if c == nil {
		return fmt.Errorf("%w: case is nil", ErrEmptyQuery)
	}
	if c.Query == "" {
		return ErrEmptyQuery
	}
	return nil
}
