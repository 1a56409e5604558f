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
	"log/slog"

	"github.com/poiesic/findit/core"
)

// SearchMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, terms []string)
	AfterFilter(eligible int)
	AfterLexicalScoring(scored int)
	AfterDenseScoring(scored int)
	Finish(results []*core.Candidate)
}

// LoggingMonitor reports each retrieval stage to a structured logger
// at debug level.
type LoggingMonitor struct {
	logger *slog.Logger
}

var _ SearchMonitor = (*LoggingMonitor)(nil)

// NewLoggingMonitor creates a monitor writing to the given logger.
// A nil logger falls back to slog.Default().
func NewLoggingMonitor(logger *slog.Logger) *LoggingMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingMonitor{logger: logger.With("component", "search_monitor")}
}

func (m *LoggingMonitor) Start(query string, terms []string) {
	m.logger.Debug("search started", "query", query, "terms", terms)
}

func (m *LoggingMonitor) AfterFilter(eligible int) {
	m.logger.Debug("filters applied", "eligible", eligible)
}

func (m *LoggingMonitor) AfterLexicalScoring(scored int) {
	m.logger.Debug("lexical scoring done", "matched", scored)
}

func (m *LoggingMonitor) AfterDenseScoring(scored int) {
	m.logger.Debug("dense scoring done", "scored", scored)
}

func (m *LoggingMonitor) Finish(results []*core.Candidate) {
	m.logger.Debug("search finished", "results", len(results))
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)        {}
func (n *noopMonitor) AfterFilter(_ int)                 {}
func (n *noopMonitor) AfterLexicalScoring(_ int)         {}
func (n *noopMonitor) AfterDenseScoring(_ int)           {}
func (n *noopMonitor) Finish(_ []*core.Candidate)        {}
