package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBM25Ranking(t *testing.T) {
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"a fast auburn fox leaps across a sleepy hound",
		"grep searches files for lines matching a pattern",
		"the fox the fox the fox",
	}
	idx := NewBM25(texts)

	t.Run("query term frequency drives rank", func(t *testing.T) {
		top := idx.TopN("fox", 4)
		require.NotEmpty(t, top)
		assert.Equal(t, 3, top[0], "repeated-term document should rank first")
	})

	t.Run("unrelated document scores zero", func(t *testing.T) {
		scores := idx.Scores("fox")
		assert.Zero(t, scores[2])
		assert.Positive(t, scores[0])
	})

	t.Run("unknown term matches nothing", func(t *testing.T) {
		scores := idx.Scores("zeppelin")
		for _, s := range scores {
			assert.Zero(t, s)
		}
	})

	t.Run("topN caps at corpus size", func(t *testing.T) {
		top := idx.TopN("fox", 100)
		assert.Len(t, top, 4)
	})
}

func TestBM25EmptyCorpus(t *testing.T) {
	idx := NewBM25(nil)

	assert.Zero(t, idx.Len())
	assert.Empty(t, idx.Scores("anything"))
	assert.Empty(t, idx.TopN("anything", 10))
}

func TestBM25CaseInsensitive(t *testing.T) {
	idx := NewBM25([]string{"Retrieval Augmented Generation"})

	scores := idx.Scores("retrieval")
	require.Len(t, scores, 1)
	assert.Positive(t, scores[0])
}
