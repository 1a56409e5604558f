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
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/findit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// PairwiseScorer implements ai.PairwiseScorer using OpenAI-compatible chat APIs.
// Each (query, candidate) pair is judged jointly in a single prompt, the
// cross-encoder pattern, rather than embedding each side independently.
type PairwiseScorer struct {
	client llms.Model
	logger *slog.Logger
}

// newPairwiseScorer is an internal constructor that returns the concrete type.
func newPairwiseScorer(config *ai.Config) (*PairwiseScorer, error) {
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

	return &PairwiseScorer{
		client: client,
		logger: slog.Default().With("component", "openai-scorer"),
	}, nil
}

// NewPairwiseScorer creates a new pairwise scorer using the provided configuration.
//
// Returns ai.PairwiseScorer interface to enforce abstraction.
func NewPairwiseScorer(config *ai.Config) (ai.PairwiseScorer, error) {
	return newPairwiseScorer(config)
}

// Score rates the relevance of candidateText to query. Higher is more
// relevant. The model is prompted for a bare number; anything else is an
// error so callers can apply their fallback.
func (s *PairwiseScorer) Score(ctx context.Context, query, candidateText string) (float64, error) {
	prompt := fmt.Sprintf(scorePromptTemplate, query, truncate(candidateText, 300))

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		s.logger.Error("failed to generate content", "err", err)
		return 0, err
	}

	if len(response.Choices) < 1 {
		return 0, fmt.Errorf("empty scorer response")
	}

	raw := strings.TrimSpace(response.Choices[0].Content)
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.Warn("non-numeric scorer response", "response", raw)
		return 0, fmt.Errorf("parse score %q: %w", raw, err)
	}

	return score, nil
}
