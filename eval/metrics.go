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

import "github.com/poiesic/findit/core"

// hitAtK reports whether any truth id appears in the top k of the ranking.
func hitAtK(ranked []core.ID, truth map[core.ID]bool, k int) bool {
	if k > len(ranked) {
		k = len(ranked)
	}
	for _, id := range ranked[:k] {
		if truth[id] {
			return true
		}
	}
	return false
}

// precisionRecallF1 computes set-overlap metrics between the top k of
// the ranking and the truth set. Only meaningful when the truth set is
// complete, so hint-quality cases never reach this.
func precisionRecallF1(ranked []core.ID, truth map[core.ID]bool, k int) (precision, recall, f1 float64) {
	if k > len(ranked) {
		k = len(ranked)
	}
	if k == 0 || len(truth) == 0 {
		return 0, 0, 0
	}

	relevant := 0
	for _, id := range ranked[:k] {
		if truth[id] {
			relevant++
		}
	}

	precision = float64(relevant) / float64(k)
	recall = float64(relevant) / float64(len(truth))
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}
