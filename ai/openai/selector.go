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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Selector implements ai.Selector using OpenAI-compatible chat APIs.
type Selector struct {
	client llms.Model
	logger *slog.Logger
}

// selectionWire matches the JSON structure the model is prompted to emit.
type selectionWire struct {
	RankedIDs  []uint64 `json:"ranked_ids"`
	TopMatchID uint64   `json:"top_match_id"`
	Reason     string   `json:"reason"`
}

// newSelector is an internal constructor that returns the concrete type.
func newSelector(config *ai.Config) (*Selector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Selector{
		client: client,
		logger: slog.Default().With("component", "openai-selector"),
	}, nil
}

// NewSelector creates a new generative selector using the provided configuration.
//
// Returns ai.Selector interface to enforce abstraction.
func NewSelector(config *ai.Config) (ai.Selector, error) {
	return newSelector(config)
}

// Select asks the model to reorder the candidates and pick the best match.
// An unparseable response returns an error wrapping core.ErrRerankParse so
// the reranker can keep its input order.
func (s *Selector) Select(ctx context.Context, query string, intent *core.Intent, candidates []*core.ProductRecord) (*ai.Selection, error) {
	intentJSON, _ := json.Marshal(map[string]any{
		"keywords": intent.Keywords,
		"sort":     intent.Sort.String(),
		"category": intent.Filters.Category,
	})

	var sb strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&sb, "ID %d: %s (Desc: %s, Loc: %s)\n",
			c.Id, c.Name, truncate(c.Description, 80), c.Location)
	}

	prompt := fmt.Sprintf(selectPromptTemplate, query, intentJSON, sb.String())

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		s.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("%w: empty response", core.ErrRerankParse)
	}

	responseText := repairJSON(stripFences(response.Choices[0].Content))

	var wire selectionWire
	if err := json.Unmarshal([]byte(responseText), &wire); err != nil {
		s.logger.Warn("error parsing selector response", "response", responseText, "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrRerankParse, err)
	}

	selection := &ai.Selection{
		RankedIDs:  make([]core.ID, len(wire.RankedIDs)),
		TopMatchID: core.ID(wire.TopMatchID),
		Rationale:  wire.Reason,
	}
	for i, id := range wire.RankedIDs {
		selection.RankedIDs[i] = core.ID(id)
	}

	s.logger.Debug("selection complete",
		"ranked", len(selection.RankedIDs),
		"top", selection.TopMatchID)

	return selection, nil
}
