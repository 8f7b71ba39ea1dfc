package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/researchit/websearch"
)

// MockSearcher is a test double for websearch.Searcher.
type MockSearcher struct {
	SearchFunc func(ctx context.Context, query string, maxResults int) ([]websearch.Result, error)

	searchCalls int
}

// NewMockSearcher creates a searcher that returns deterministic results
// derived from the query.
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{}
}

// Search returns maxResults synthetic hits unless overridden.
func (m *MockSearcher) Search(ctx context.Context, query string, maxResults int) ([]websearch.Result, error) {
	m.searchCalls++

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, maxResults)
	}

	if maxResults <= 0 {
		maxResults = 5
	}
	results := make([]websearch.Result, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		results = append(results, websearch.Result{
			Title:   fmt.Sprintf("Result %d for %s", i+1, query),
			URL:     fmt.Sprintf("https://example.com/%d", i+1),
			Content: fmt.Sprintf("Synthetic web content %d about %s", i+1, query),
			Score:   1.0 / float32(i+1),
		})
	}
	return results, nil
}

// SearchCalls returns the number of Search invocations.
func (m *MockSearcher) SearchCalls() int { return m.searchCalls }

// Reset clears call counts and custom functions.
func (m *MockSearcher) Reset() {
	*m = MockSearcher{}
}
