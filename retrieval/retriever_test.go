package retrieval

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/poiesic/researchit/ai/mock"
	"github.com/poiesic/researchit/core"
	badgerstore "github.com/poiesic/researchit/storage/badger"
)

func TestFuseRRF(t *testing.T) {
	a := &core.Document{Id: core.ID(1), Content: "a"}
	b := &core.Document{Id: core.ID(2), Content: "b"}
	c := &core.Document{Id: core.ID(3), Content: "c"}

	t.Run("document in both lists outranks single-list document", func(t *testing.T) {
		// a is rank 0 in both lists: 2/61. b is rank 0 in one list: 1/61.
		fused := FuseRRF(10, []*core.Document{a, b}, []*core.Document{a, c})
		require.Len(t, fused, 3)
		assert.Equal(t, a.Id, fused[0].Id)
	})

	t.Run("dedupe yields one instance per id", func(t *testing.T) {
		fused := FuseRRF(10, []*core.Document{a, b}, []*core.Document{b, a})
		assert.Len(t, fused, 2)
	})

	t.Run("tie keeps first appearance order", func(t *testing.T) {
		// b and c each appear once at rank 0
		fused := FuseRRF(10, []*core.Document{b}, []*core.Document{c})
		require.Len(t, fused, 2)
		assert.Equal(t, b.Id, fused[0].Id)
		assert.Equal(t, c.Id, fused[1].Id)
	})

	t.Run("topK truncates", func(t *testing.T) {
		fused := FuseRRF(1, []*core.Document{a, b}, []*core.Document{c})
		assert.Len(t, fused, 1)
	})

	t.Run("zero id documents are not merged", func(t *testing.T) {
		x := &core.Document{Content: "x"}
		y := &core.Document{Content: "y"}
		fused := FuseRRF(10, []*core.Document{x}, []*core.Document{y})
		assert.Len(t, fused, 2)
	})

	t.Run("empty lists fuse to empty", func(t *testing.T) {
		assert.Empty(t, FuseRRF(10, nil, nil))
	})
}

func newTestRetriever(t *testing.T) (*Retriever, *aimock.MockEmbedder, func()) {
	t.Helper()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)

	embedder := aimock.NewMockEmbedder()
	retriever, err := NewRetriever(repo, embedder, slog.Default())
	require.NoError(t, err)

	ctx := context.Background()
	docs := []*core.Document{
		{Content: "badger is an embedded key value store", Section: "Storage"},
		{Content: "reciprocal rank fusion merges ranked lists", Section: "Retrieval"},
		{Content: "bm25 scores lexical overlap between query and document", Section: "Retrieval"},
	}
	for _, doc := range docs {
		doc.Vector = aimock.DeterministicVector(doc.Content, 384)
	}
	_, err = repo.AddDocuments(ctx, docs...)
	require.NoError(t, err)

	return retriever, embedder, func() { repo.Close(); backend.Close() }
}

func TestLexicalSearch(t *testing.T) {
	retriever, _, cleanup := newTestRetriever(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("returns best lexical match first", func(t *testing.T) {
		results, err := retriever.LexicalSearch(ctx, "bm25 lexical overlap", "", 2)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Contains(t, results[0].Content, "bm25")
	})

	t.Run("section filter narrows corpus", func(t *testing.T) {
		results, err := retriever.LexicalSearch(ctx, "badger key value", "Retrieval", 3)
		require.NoError(t, err)
		for _, doc := range results {
			assert.Equal(t, "Retrieval", doc.Section)
		}
	})

	t.Run("unknown sentinel disables filter", func(t *testing.T) {
		results, err := retriever.LexicalSearch(ctx, "badger key value", "Unknown Section", 3)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Contains(t, results[0].Content, "badger")
	})

	t.Run("missing section falls back to full corpus", func(t *testing.T) {
		results, err := retriever.LexicalSearch(ctx, "badger key value", "Nonexistent", 3)
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		_, err := retriever.LexicalSearch(ctx, "", "", 3)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})
}

func TestVectorSearch(t *testing.T) {
	retriever, _, cleanup := newTestRetriever(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("identical text is most similar", func(t *testing.T) {
		results, err := retriever.VectorSearch(ctx, "badger is an embedded key value store", "", 3)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Contains(t, results[0].Content, "badger")
		assert.InDelta(t, 1.0, results[0].Score, 0.001)
	})

	t.Run("section filter applies", func(t *testing.T) {
		results, err := retriever.VectorSearch(ctx, "bm25 scores lexical overlap between query and document", "Retrieval", 3)
		require.NoError(t, err)
		for _, doc := range results {
			assert.Equal(t, "Retrieval", doc.Section)
		}
	})
}

func TestHybridSearch(t *testing.T) {
	retriever, _, cleanup := newTestRetriever(t)
	defer cleanup()

	ctx := context.Background()

	results, err := retriever.HybridSearch(ctx, "bm25 scores lexical overlap between query and document", "", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// Best in both lexical and vector rankings, so best after fusion
	assert.Contains(t, results[0].Content, "bm25")

	// Fusion dedupes by id
	seen := map[core.ID]bool{}
	for _, doc := range results {
		assert.False(t, seen[doc.Id], "duplicate document in fused results")
		seen[doc.Id] = true
	}
}

func TestSearchDispatch(t *testing.T) {
	retriever, _, cleanup := newTestRetriever(t)
	defer cleanup()

	ctx := context.Background()

	for _, strategy := range []core.RetrievalStrategy{
		core.StrategyKeyword,
		core.StrategyVector,
		core.StrategyHybrid,
	} {
		results, err := retriever.Search(ctx, strategy, "reciprocal rank fusion merges ranked lists", "", 3)
		require.NoError(t, err, "strategy %v", strategy)
		assert.NotEmpty(t, results, "strategy %v", strategy)
	}

	_, err := retriever.Search(ctx, core.RetrievalStrategy(0), "query", "", 3)
	assert.ErrorIs(t, err, core.ErrInvalidStrategy)
}
