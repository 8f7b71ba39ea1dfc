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

package researchit

import (
	"log/slog"

	"github.com/poiesic/researchit/agent"
	"github.com/poiesic/researchit/ai"
	"github.com/poiesic/researchit/ai/openai"
	"github.com/poiesic/researchit/ingestion"
	"github.com/poiesic/researchit/retrieval"
	"github.com/poiesic/researchit/storage"
	"github.com/poiesic/researchit/storage/badger"
	"github.com/poiesic/researchit/websearch"
	"github.com/poiesic/researchit/websearch/tavily"
)

// Database bundles the document store, the AI provider, and the optional
// web search backend behind one handle.
type Database struct {
	backend      *badger.Backend
	documentRepo storage.DocumentRepository
	provider     ai.Provider
	web          websearch.Searcher
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig     *ai.Config
	tavilyAPIKey string
	web          websearch.Searcher
}

// WithAIConfig replaces the default AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithTavily enables web research through the Tavily API.
func WithTavily(apiKey string) DatabaseOption {
	return func(o *databaseOptions) {
		o.tavilyAPIKey = apiKey
	}
}

// WithWebSearcher installs a custom web search backend.
// Takes precedence over WithTavily.
func WithWebSearcher(searcher websearch.Searcher) DatabaseOption {
	return func(o *databaseOptions) {
		o.web = searcher
	}
}

// NewDatabase opens (or creates) a research database at filePath.
// Without a web search option, web research steps yield no documents.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create document repository
	documentRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		documentRepo.Close()
		backend.Close()
		return nil, err
	}

	// Wire up web search if configured
	web := options.web
	if web == nil && options.tavilyAPIKey != "" {
		client, err := tavily.NewClient(options.tavilyAPIKey, slog.Default())
		if err != nil {
			provider.Close()
			documentRepo.Close()
			backend.Close()
			return nil, err
		}
		web = client
	}

	return &Database{
		backend:      backend,
		documentRepo: documentRepo,
		provider:     provider,
		web:          web,
		logger:       slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := db.documentRepo.Close(); err != nil {
		db.logger.Error("error closing document repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.documentRepo
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.documentRepo, db.provider, opts...)
}

// NewEngine creates a research engine over the database's corpus.
func (db *Database) NewEngine(opts ...agent.Option) (*agent.Engine, error) {
	retriever, err := retrieval.NewRetriever(db.documentRepo, db.provider.Embedder(), db.logger)
	if err != nil {
		return nil, err
	}
	return agent.NewEngine(db.provider, retriever, db.web, opts...)
}
