package agent

import (
	"context"

	"github.com/poiesic/researchit/core"
)

// Reranker reorders retrieved documents by relevance to the query and
// keeps the topN best. Implementations may call out to a cross-encoder;
// the default trusts retrieval order and truncates.
type Reranker interface {
	Rerank(ctx context.Context, query string, docs []*core.Document, topN int) ([]*core.Document, error)
}

// topNReranker keeps the first topN documents. Retrieval already returns
// documents best first, so truncation preserves ranking.
type topNReranker struct{}

var _ Reranker = (*topNReranker)(nil)

func (topNReranker) Rerank(_ context.Context, _ string, docs []*core.Document, topN int) ([]*core.Document, error) {
	if topN < len(docs) {
		docs = docs[:topN]
	}
	return docs, nil
}
