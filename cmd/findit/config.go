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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/search"
)

// Config is the YAML engine configuration surfaced by the CLI.
type Config struct {
	AI struct {
		EmbeddingHost  string `yaml:"embedding_host"`
		ChatHost       string `yaml:"chat_host"`
		EmbeddingModel string `yaml:"embedding_model"`
		ChatModel      string `yaml:"chat_model"`
	} `yaml:"ai"`

	Retrieval struct {
		Alpha float64 `yaml:"alpha"`
		TopK  int     `yaml:"top_k"`
	} `yaml:"retrieval"`

	Rerank struct {
		Strategy string `yaml:"strategy"` // none, cross_encoder, selector
	} `yaml:"rerank"`

	Evaluation struct {
		Cutoffs []int    `yaml:"cutoffs"`
		Methods []string `yaml:"methods"` // lexical, dense, hybrid, reranked
	} `yaml:"evaluation"`
}

// defaultConfig returns the configuration used when no file is given.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Retrieval.Alpha = search.DefaultAlpha
	cfg.Retrieval.TopK = search.DefaultTopK
	cfg.Rerank.Strategy = "selector"
	return cfg
}

// loadConfig reads a YAML config file, filling unset fields with defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Retrieval.Alpha < 0 || cfg.Retrieval.Alpha > 1 {
		return nil, fmt.Errorf("retrieval.alpha must be in [0, 1], got %v", cfg.Retrieval.Alpha)
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = search.DefaultTopK
	}
	switch cfg.Rerank.Strategy {
	case "none", "cross_encoder", "selector":
	default:
		return nil, fmt.Errorf("rerank.strategy must be none, cross_encoder, or selector, got %q", cfg.Rerank.Strategy)
	}
	return cfg, nil
}

// aiConfig converts the YAML section into provider options.
func (cfg *Config) aiConfig() *ai.Config {
	var opts []ai.ConfigOption
	if cfg.AI.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(cfg.AI.EmbeddingHost))
	}
	if cfg.AI.ChatHost != "" {
		opts = append(opts, ai.WithChatHost(cfg.AI.ChatHost))
	}
	if cfg.AI.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(cfg.AI.EmbeddingModel))
	}
	if cfg.AI.ChatModel != "" {
		opts = append(opts, ai.WithChatModel(cfg.AI.ChatModel))
	}
	return ai.NewConfig(opts...)
}
