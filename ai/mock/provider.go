package mock

import (
	"github.com/poiesic/researchit/ai"
)

// MockProvider bundles a mock reasoner and embedder behind the ai.Provider
// interface.
type MockProvider struct {
	reasoner *MockReasoner
	embedder *MockEmbedder
}

// NewMockProvider creates a provider with default deterministic doubles.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		reasoner: NewMockReasoner(),
		embedder: NewMockEmbedder(),
	}
}

// Reasoner returns the reasoner as the ai.Reasoner interface.
func (p *MockProvider) Reasoner() ai.Reasoner {
	return p.reasoner
}

// Embedder returns the embedder as the ai.Embedder interface.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// GetMockReasoner returns the concrete reasoner for behavior injection.
func (p *MockProvider) GetMockReasoner() *MockReasoner {
	return p.reasoner
}

// GetMockEmbedder returns the concrete embedder for behavior injection.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error {
	return nil
}
