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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/findit"
	"github.com/poiesic/findit/eval"
)

func main() {
	app := &cli.App{
		Name:  "findit",
		Usage: "Hybrid product retrieval and reranking engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Write a deterministic demo catalog JSON",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output path for the corpus JSON",
						Value:   "corpus.json",
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Build the index and warm the embedding cache for a corpus",
				Action: indexCommand,
				Flags:  append(engineFlags(), corpusFlag()),
			},
			{
				Name:   "search",
				Usage:  "Run a query through the full retrieval pipeline",
				Action: searchCommand,
				Flags: append(engineFlags(), corpusFlag(),
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Free-text search query",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of results to return (0 uses config)",
					},
				),
			},
			{
				Name:   "evaluate",
				Usage:  "Measure retrieval quality against labeled cases",
				Action: evaluateCommand,
				Flags: append(engineFlags(), corpusFlag(),
					&cli.StringFlag{
						Name:     "cases",
						Usage:    "Path to ground-truth cases JSON",
						Required: true,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			Aliases: []string{"d"},
			Usage:   "Path to the embedding cache directory",
			Value:   ".findit-cache",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to YAML engine configuration",
		},
	}
}

func corpusFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "corpus",
		Usage:    "Path to the product corpus JSON",
		Required: true,
	}
}

// openEngine builds an engine from CLI flags and YAML config.
func openEngine(c *cli.Context) (*findit.Engine, *Config, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	aiConfig := cfg.aiConfig()
	if err := aiConfig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := findit.NewEngine(c.String("cache"),
		findit.WithAIConfig(aiConfig),
		findit.WithFusionAlpha(cfg.Retrieval.Alpha),
		findit.WithRerankStrategy(findit.RerankStrategy(cfg.Rerank.Strategy)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, cfg, nil
}

// indexEngine loads the corpus and builds the index.
func indexEngine(c *cli.Context, engine *findit.Engine) error {
	products, err := loadCorpus(c.String("corpus"))
	if err != nil {
		return err
	}

	stats, err := engine.Index(context.Background(), products)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "indexed %d products (%d embedded, %d degraded, %d cache hits) in %s\n",
		stats.ProductCount, stats.EmbeddedCount, stats.DegradedCount, stats.CacheHits, stats.Duration)
	return nil
}

func seedCommand(c *cli.Context) error {
	out := c.String("out")
	if err := writeSeedCorpus(out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote demo catalog to %s\n", out)
	return nil
}

func indexCommand(c *cli.Context) error {
	engine, _, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	return indexEngine(c, engine)
}

func searchCommand(c *cli.Context) error {
	engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := indexEngine(c, engine); err != nil {
		return err
	}

	topK := c.Int("top-k")
	if topK <= 0 {
		topK = cfg.Retrieval.TopK
	}

	result, err := engine.Search(context.Background(), c.String("query"), topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if result.Degraded {
		fmt.Fprintf(os.Stderr, "degraded: %s\n", result.Reason)
	}
	if result.Ranked.TopPick != nil {
		fmt.Printf("top pick: %s (%s)\n\n",
			result.Ranked.TopPick.Product.Name, result.Ranked.TopPick.Rationale)
	}
	for i, candidate := range result.Ranked.Candidates {
		fmt.Printf("%2d. [%d] %s  %s  %d  (hybrid=%.3f lexical=%.3f dense=%.3f)\n",
			i+1, candidate.Product.Id, candidate.Product.Name, candidate.Product.Category,
			candidate.Product.Price, candidate.Hybrid, candidate.Lexical, candidate.Dense)
	}
	return nil
}

func evaluateCommand(c *cli.Context) error {
	engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := indexEngine(c, engine); err != nil {
		return err
	}

	cases, err := loadCases(c.String("cases"))
	if err != nil {
		return err
	}

	var opts []eval.Option
	if len(cfg.Evaluation.Cutoffs) > 0 {
		opts = append(opts, eval.WithCutoffs(cfg.Evaluation.Cutoffs...))
	}
	if len(cfg.Evaluation.Methods) > 0 {
		methods := make([]eval.Method, len(cfg.Evaluation.Methods))
		for i, m := range cfg.Evaluation.Methods {
			methods[i] = eval.Method(m)
		}
		opts = append(opts, eval.WithMethods(methods...))
	}

	evaluator, err := engine.NewEvaluator(opts...)
	if err != nil {
		return err
	}

	report, err := evaluator.Run(context.Background(), cases)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	return report.WriteText(os.Stdout)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
