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

package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/researchit/ai"
	"github.com/poiesic/researchit/core"
	"github.com/poiesic/researchit/storage"
)

// rrfK is the reciprocal rank fusion constant. A candidate at rank r in a
// result list contributes 1/(r+rrfK) to its fused score.
const rrfK = 61

// Retriever runs lexical, vector, and hybrid searches over the document
// repository.
type Retriever struct {
	repo     storage.DocumentRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewRetriever creates a retriever over the given repository and embedder.
func NewRetriever(repo storage.DocumentRepository, embedder ai.Embedder, logger *slog.Logger) (*Retriever, error) {
	if repo == nil {
		return nil, ErrNoRepository
	}
	if embedder == nil {
		return nil, ErrNoEmbedder
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Retriever{
		repo:     repo,
		embedder: embedder,
		logger:   logger.With("component", "retriever"),
	}, nil
}

// sectionUsable reports whether a section filter should be applied.
// Planners emit "Unknown" (or variants of it) when no section applies.
func sectionUsable(section string) bool {
	return section != "" && !strings.Contains(section, "Unknown")
}

// candidates returns the documents to search over. A usable section filter
// narrows the corpus; an empty filtered set falls back to the full corpus.
func (r *Retriever) candidates(ctx context.Context, section string) ([]*core.Document, error) {
	if sectionUsable(section) {
		docs, err := r.repo.GetDocumentsBySection(ctx, section)
		if err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			return docs, nil
		}
		r.logger.Debug("section filter matched nothing, using full corpus", "section", section)
	}
	return r.repo.GetAllDocuments(ctx)
}

// LexicalSearch runs BM25 over the candidate documents and returns the
// topK best matches. An empty corpus returns an empty slice.
func (r *Retriever) LexicalSearch(ctx context.Context, query, section string, topK int) ([]*core.Document, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	docs, err := r.candidates(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	idx := NewBM25(texts)
	results := make([]*core.Document, 0, topK)
	for _, i := range idx.TopN(query, topK) {
		results = append(results, docs[i])
	}

	r.logger.Debug("lexical search complete", "query", query, "results", len(results))
	return results, nil
}

// VectorSearch embeds the query and returns the topK most similar
// documents by cosine similarity. A usable section filter narrows the
// search; an empty filtered result falls back to the full index.
func (r *Retriever) VectorSearch(ctx context.Context, query, section string, topK int) ([]*core.Document, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	filter := ""
	if sectionUsable(section) {
		filter = section
	}

	results, err := r.repo.FindSimilar(ctx, vector, filter, 0, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if len(results) == 0 && filter != "" {
		results, err = r.repo.FindSimilar(ctx, vector, "", 0, topK)
		if err != nil {
			return nil, fmt.Errorf("vector search: %w", err)
		}
	}

	r.logger.Debug("vector search complete", "query", query, "results", len(results))
	return results, nil
}

// HybridSearch fuses lexical and vector results with reciprocal rank
// fusion and returns the topK best documents.
func (r *Retriever) HybridSearch(ctx context.Context, query, section string, topK int) ([]*core.Document, error) {
	lexical, err := r.LexicalSearch(ctx, query, section, topK)
	if err != nil {
		return nil, err
	}

	vector, err := r.VectorSearch(ctx, query, section, topK)
	if err != nil {
		return nil, err
	}

	fused := FuseRRF(topK, lexical, vector)
	r.logger.Debug("hybrid search complete", "query", query, "results", len(fused))
	return fused, nil
}

// Search dispatches to the strategy's search method.
func (r *Retriever) Search(ctx context.Context, strategy core.RetrievalStrategy, query, section string, topK int) ([]*core.Document, error) {
	switch strategy {
	case core.StrategyKeyword:
		return r.LexicalSearch(ctx, query, section, topK)
	case core.StrategyVector:
		return r.VectorSearch(ctx, query, section, topK)
	case core.StrategyHybrid:
		return r.HybridSearch(ctx, query, section, topK)
	default:
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidStrategy, strategy)
	}
}

// FuseRRF merges ranked result lists with reciprocal rank fusion. Each
// document contributes 1/(rank+61) per list it appears in; duplicates are
// merged by document ID. Ties keep first-appearance order.
func FuseRRF(topK int, lists ...[]*core.Document) []*core.Document {
	type fused struct {
		doc   *core.Document
		score float64
	}

	byKey := make(map[string]*fused)
	var entries []*fused

	for listIdx, list := range lists {
		for rank, doc := range list {
			if doc == nil {
				continue
			}

			key := fmt.Sprintf("id:%d", doc.Id)
			if doc.Id == 0 {
				// No identity to merge on; treat as unique
				key = fmt.Sprintf("pos:%d:%d", listIdx, rank)
			}

			entry, ok := byKey[key]
			if !ok {
				entry = &fused{doc: doc}
				byKey[key] = entry
				entries = append(entries, entry)
			}
			entry.score += 1.0 / float64(rank+rrfK)
		}
	}

	// Stable so equal fused scores keep first-appearance order
	slices.SortStableFunc(entries, func(a, b *fused) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return 0
	})

	if len(entries) > topK {
		entries = entries[:topK]
	}

	results := make([]*core.Document, 0, len(entries))
	for _, entry := range entries {
		results = append(results, entry.doc)
	}
	return results
}
