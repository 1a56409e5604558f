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

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryUnderstander implements ai.QueryUnderstander using OpenAI-compatible chat APIs.
type QueryUnderstander struct {
	client llms.Model
	logger *slog.Logger
}

// intentWire matches the JSON structure the model is prompted to emit.
type intentWire struct {
	IsSearchIntent bool        `json:"is_search_intent"`
	Keywords       []string    `json:"keywords"`
	Filters        filtersWire `json:"filters"`
	Sort           string      `json:"sort"`
	NeedsExpansion []string    `json:"needs_expansion"`
}

type filtersWire struct {
	Category  string          `json:"category"`
	PriceMin  *int64          `json:"price_min"`
	PriceMax  *int64          `json:"price_max"`
	Negatives json.RawMessage `json:"negatives"`
}

// negatives tolerates both a JSON array and a bare string, since smaller
// models emit either shape.
func (f *filtersWire) negatives() []string {
	if len(f.Negatives) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(f.Negatives, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(f.Negatives, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

// newQueryUnderstander is an internal constructor that returns the concrete type.
func newQueryUnderstander(config *ai.Config) (*QueryUnderstander, error) {
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

	return &QueryUnderstander{
		client: client,
		logger: slog.Default().With("component", "openai-understander"),
	}, nil
}

// NewQueryUnderstander creates a new query understander using the provided configuration.
//
// Returns ai.QueryUnderstander interface to enforce abstraction.
func NewQueryUnderstander(config *ai.Config) (ai.QueryUnderstander, error) {
	return newQueryUnderstander(config)
}

// Understand extracts a structured Intent from the raw query.
// A provider error or unparseable response returns an error wrapping
// core.ErrQueryUnderstanding; callers fall back to core.FallbackIntent.
func (u *QueryUnderstander) Understand(ctx context.Context, query string) (*core.Intent, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(understandPromptTemplate)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(query)},
		},
	}

	response, err := u.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		u.logger.Error("failed to generate content", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrQueryUnderstanding, err)
	}

	if len(response.Choices) < 1 {
		u.logger.Debug("no choices returned from model")
		return nil, fmt.Errorf("%w: empty response", core.ErrQueryUnderstanding)
	}

	responseText := repairJSON(stripFences(response.Choices[0].Content))

	var wire intentWire
	if err := json.Unmarshal([]byte(responseText), &wire); err != nil {
		u.logger.Warn("error parsing understander response", "response", responseText, "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrQueryUnderstanding, err)
	}

	intent := &core.Intent{
		IsSearch: wire.IsSearchIntent,
		Keywords: wire.Keywords,
		Filters: core.Filters{
			Category:  wire.Filters.Category,
			Negatives: wire.Filters.negatives(),
		},
		Sort:      core.ParseSortOrder(wire.Sort),
		Expansion: wire.NeedsExpansion,
	}
	if wire.Filters.PriceMin != nil {
		intent.Filters.PriceMin = *wire.Filters.PriceMin
	}
	if wire.Filters.PriceMax != nil {
		intent.Filters.PriceMax = *wire.Filters.PriceMax
	}
	if intent.Keywords == nil {
		intent.Keywords = []string{}
	}

	u.logger.Debug("extracted intent",
		"keywords", len(intent.Keywords),
		"sort", intent.Sort.String(),
		"expansion", len(intent.Expansion))

	return intent, nil
}
