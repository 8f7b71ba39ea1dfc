package ai

import (
	"context"

	"github.com/poiesic/researchit/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// PolicyRequest carries everything the policy agent sees when deciding
// whether research should continue.
type PolicyRequest struct {
	OriginalQuestion string
	ResearchHistory  string
	CurrentStep      int
	MaxSteps         int
	TotalSteps       int
}

// Reasoner is the reasoning capability invoked by every agent role.
// One typed method per role; implementations format a role-specific prompt
// and parse the response. None of the methods retains state between
// invocations: from the orchestrator's perspective each call is a pure
// function of its inputs, modulo model non-determinism.
//
// Implementations must be thread-safe for concurrent use.
type Reasoner interface {
	// GeneratePlan breaks a question into an ordered multi-step research plan.
	GeneratePlan(ctx context.Context, question string) (*core.Plan, error)

	// RewriteQuery turns a sub-question into an optimized search query,
	// given the step's keywords and the research history so far.
	RewriteQuery(ctx context.Context, subQuestion string, keywords []string, pastContext string) (string, error)

	// SelectStrategy picks a retrieval strategy for an optimized query.
	SelectStrategy(ctx context.Context, query string) (*core.RetrievalDecision, error)

	// Summarize condenses the distilled context of one step into a
	// research-history summary for the given sub-question.
	Summarize(ctx context.Context, subQuestion, context string) (string, error)

	// Distill extracts only the context relevant to the question from
	// retrieved documents. It must not add content absent from the input;
	// this is a prompt-level contract.
	Distill(ctx context.Context, question, context string) (string, error)

	// DecidePolicy makes the advisory continue/stop decision after a
	// reflection cycle.
	DecidePolicy(ctx context.Context, req PolicyRequest) (*core.PolicyDecision, error)

	// Synthesize produces the final answer from the original question and
	// the aggregated research context.
	Synthesize(ctx context.Context, question, context string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Reasoner and Embedder instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Reasoner returns the reasoning capability.
	// The returned Reasoner is safe for concurrent use.
	Reasoner() Reasoner

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
