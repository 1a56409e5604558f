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

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/poiesic/findit/core"
)

// MetricCell aggregates one method at one cutoff across scored cases.
// Precision, recall, and F1 average only over full-truth cases; hint
// cases contribute to the hit rate alone.
type MetricCell struct {
	Method    Method
	Cutoff    int
	HitRate   float64
	Precision float64
	Recall    float64
	F1        float64
	HitCases  int
	PRCases   int
}

// CaseFailure records why a case was excluded from scoring.
type CaseFailure struct {
	Query  string
	Reason string
}

// ScenarioStat aggregates hybrid hit rate per scenario tag.
type ScenarioStat struct {
	Scenario string
	Cases    int
	HitRate  float64
}

// Report is the aggregated outcome of an evaluation run.
// ScoredCases + UnscoredCases always equals TotalCases.
type Report struct {
	TotalCases    int
	ScoredCases   int
	UnscoredCases int
	Cells         []*MetricCell
	Scenarios     []*ScenarioStat
	Failures      []CaseFailure

	cellIndex     map[Method]map[int]*MetricCell
	scenarioIndex map[string]*scenarioAccum
	scenarioKey   Method
	scenarioDepth int
}

type scenarioAccum struct {
	cases int
	hits  int
}

func newReport(methods []Method, cutoffs []int) *Report {
	r := &Report{
		cellIndex:     make(map[Method]map[int]*MetricCell),
		scenarioIndex: make(map[string]*scenarioAccum),
	}

	for _, method := range methods {
		r.cellIndex[method] = make(map[int]*MetricCell, len(cutoffs))
		for _, k := range cutoffs {
			cell := &MetricCell{Method: method, Cutoff: k}
			r.cellIndex[method][k] = cell
			r.Cells = append(r.Cells, cell)
		}
	}

	// Scenario stats use the last configured method (hybrid in the
	// default set) at the smallest cutoff.
	if len(methods) > 0 {
		r.scenarioKey = methods[len(methods)-1]
	}
	if len(cutoffs) > 0 {
		r.scenarioDepth = cutoffs[0]
		for _, k := range cutoffs {
			if k < r.scenarioDepth {
				r.scenarioDepth = k
			}
		}
	}

	return r
}

// absorb folds one scored case into the aggregates. Cells accumulate
// sums here; finalize converts them to means.
func (r *Report) absorb(outcome *caseOutcome, c *core.GroundTruthCase) {
	for method, ranked := range outcome.rankings {
		for k, cell := range r.cellIndex[method] {
			cell.HitCases++
			if hitAtK(ranked, outcome.truth, k) {
				cell.HitRate++
			}
			if !outcome.hint {
				precision, recall, f1 := precisionRecallF1(ranked, outcome.truth, k)
				cell.Precision += precision
				cell.Recall += recall
				cell.F1 += f1
				cell.PRCases++
			}
		}
	}

	if c.Scenario != "" {
		accum := r.scenarioIndex[c.Scenario]
		if accum == nil {
			accum = &scenarioAccum{}
			r.scenarioIndex[c.Scenario] = accum
		}
		accum.cases++
		if hitAtK(outcome.rankings[r.scenarioKey], outcome.truth, r.scenarioDepth) {
			accum.hits++
		}
	}
}

// finalize converts accumulated sums into means and materializes the
// scenario table in deterministic order.
func (r *Report) finalize() {
	for _, cell := range r.Cells {
		if cell.HitCases > 0 {
			cell.HitRate /= float64(cell.HitCases)
		}
		if cell.PRCases > 0 {
			cell.Precision /= float64(cell.PRCases)
			cell.Recall /= float64(cell.PRCases)
			cell.F1 /= float64(cell.PRCases)
		}
	}

	scenarios := make([]string, 0, len(r.scenarioIndex))
	for scenario := range r.scenarioIndex {
		scenarios = append(scenarios, scenario)
	}
	sort.Strings(scenarios)

	for _, scenario := range scenarios {
		accum := r.scenarioIndex[scenario]
		stat := &ScenarioStat{Scenario: scenario, Cases: accum.cases}
		if accum.cases > 0 {
			stat.HitRate = float64(accum.hits) / float64(accum.cases)
		}
		r.Scenarios = append(r.Scenarios, stat)
	}
}

// Cell returns the aggregate for a method at a cutoff, or nil when the
// pair was not measured.
func (r *Report) Cell(method Method, cutoff int) *MetricCell {
	return r.cellIndex[method][cutoff]
}

// WriteText renders the report as aligned plain-text tables.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "cases\ttotal=%d\tscored=%d\tunscored=%d\n\n",
		r.TotalCases, r.ScoredCases, r.UnscoredCases)

	fmt.Fprintln(tw, "method\tk\thit_rate\tprecision\trecall\tf1")
	for _, cell := range r.Cells {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n",
			cell.Method, cell.Cutoff, cell.HitRate, cell.Precision, cell.Recall, cell.F1)
	}

	if len(r.Scenarios) > 0 {
		fmt.Fprintln(tw, "\nscenario\tcases\thit_rate")
		for _, stat := range r.Scenarios {
			fmt.Fprintf(tw, "%s\t%d\t%.3f\n", stat.Scenario, stat.Cases, stat.HitRate)
		}
	}

	if len(r.Failures) > 0 {
		fmt.Fprintln(tw, "\nunscored query\treason")
		for _, failure := range r.Failures {
			fmt.Fprintf(tw, "%s\t%s\n", failure.Query, failure.Reason)
		}
	}

	return tw.Flush()
}
