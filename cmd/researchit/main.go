// Copyright 2026 Poiesic Systems
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
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/researchit"
	"github.com/poiesic/researchit/agent"
	"github.com/poiesic/researchit/ai"
	"github.com/poiesic/researchit/ingestion"
)

func main() {
	// Best effort; the environment may carry the settings directly
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "researchit",
		Usage:  "Agentic deep research over a local document corpus",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./research_db",
				EnvVars: []string{"RESEARCHIT_DB"},
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "OpenAI-compatible service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"RESEARCHIT_HOST"},
			},
			&cli.StringFlag{
				Name:    "reasoning-model",
				Usage:   "Reasoning model name",
				Value:   "qwen2.5:3b",
				EnvVars: []string{"RESEARCHIT_REASONING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "nomic-embed-text",
				EnvVars: []string{"RESEARCHIT_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "API token for the model service",
				EnvVars: []string{"RESEARCHIT_TOKEN", "OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "tavily-key",
				Usage:   "Tavily API key for web research",
				EnvVars: []string{"TAVILY_API_KEY"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest text files into the document corpus",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Chunk size in characters",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Chunk overlap in characters",
						Value: 150,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Research a question and print the answer",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-steps",
						Usage: "Maximum research steps per question",
						Value: 7,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Documents retrieved per step",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Documents kept after reranking",
						Value: 3,
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Print intermediate research steps",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*researchit.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithReasoningModel(c.String("reasoning-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithToken(c.String("token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []researchit.DatabaseOption{researchit.WithAIConfig(aiConfig)}
	if key := c.String("tavily-key"); key != "" {
		opts = append(opts, researchit.WithTavily(key))
	}

	return researchit.NewDatabase(c.String("db"), opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(
		ingestion.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")),
	)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	total := 0
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		count, err := pipeline.Ingest(ctx, filepath.Base(path), string(data))
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}

		fmt.Fprintf(os.Stderr, "%s: %d chunks\n", path, count)
		total += count
	}

	fmt.Fprintf(os.Stderr, "Ingested %d chunks\n", total)
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a question is required")
	}
	question := strings.Join(c.Args().Slice(), " ")

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	var monitor agent.RunMonitor
	if c.Bool("verbose") {
		monitor = &printMonitor{out: os.Stderr}
	}

	answer, err := engine.AnswerWithMonitor(context.Background(), question, monitor,
		agent.WithMaxSteps(c.Int("max-steps")),
		agent.WithTopK(c.Int("top-k")),
		agent.WithTopN(c.Int("top-n")),
	)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	fmt.Println(answer)
	return nil
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
