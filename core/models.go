package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Document IDs are derived from content hashing so identical passages
// dedupe to the same identity across retrieval paths.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is a content-bearing passage from the indexed corpus or a web
// search result. The orchestrator holds transient references only and
// never mutates a Document after retrieval.
type Document struct {
	Id         ID
	Content    string
	Source     string            // File name for corpus passages, URL for web results
	Section    string            // Section the passage was chunked from, if known
	Title      string            // Page title for web results
	Score      float32           // Backend-attached relevance score, if any
	Vector     []float32         // Embedding vector (populated by ingestion)
	InsertedAt time.Time         // When the document was indexed
	UpdatedAt  time.Time         // When the document was last updated
	Metadata   map[string]string // Optional extra metadata
}

// ToolType selects the retrieval tool for a plan step.
type ToolType int

const (
	// ToolSearchDocuments searches the indexed document corpus.
	ToolSearchDocuments ToolType = iota + 1
	// ToolSearchWeb searches the live web.
	ToolSearchWeb
)

// String returns the wire name of the tool, as produced by the planner.
func (t ToolType) String() string {
	switch t {
	case ToolSearchDocuments:
		return "search_documents"
	case ToolSearchWeb:
		return "search_web"
	default:
		return "unknown"
	}
}

// ToolTypeFromString parses a planner-produced tool name.
// Returns 0 for unrecognized names; callers route those to finalization.
func ToolTypeFromString(s string) ToolType {
	switch s {
	case "search_documents":
		return ToolSearchDocuments
	case "search_web":
		return ToolSearchWeb
	default:
		return 0
	}
}

// Step is a single step in a research plan. Steps are created by the
// planner and never mutated afterwards.
type Step struct {
	SubQuestion     string
	Justification   string
	Tool            ToolType
	Keywords        []string
	DocumentSection string // Optional section hint for vector search filtering
}

// Plan is the ordered set of steps produced once per question.
// A Plan is immutable after creation.
type Plan struct {
	Steps []Step
}

// PastStep records a completed research step. It is appended exactly once
// per reflection and is immutable once appended.
type PastStep struct {
	StepIndex     int // 1-based index of the completed step
	SubQuestion   string
	RetrievedDocs []*Document
	Summary       string
}

// RetrievalStrategy selects how a document retrieval step executes.
type RetrievalStrategy int

const (
	// StrategyVector uses semantic similarity search.
	StrategyVector RetrievalStrategy = iota + 1
	// StrategyKeyword uses BM25 lexical search.
	StrategyKeyword
	// StrategyHybrid fuses both via reciprocal rank fusion.
	StrategyHybrid
)

// String returns the wire name of the strategy.
func (s RetrievalStrategy) String() string {
	switch s {
	case StrategyVector:
		return "vector_search"
	case StrategyKeyword:
		return "keyword_search"
	case StrategyHybrid:
		return "hybrid_search"
	default:
		return "unknown"
	}
}

// RetrievalStrategyFromString parses a strategist-produced strategy name.
func RetrievalStrategyFromString(s string) RetrievalStrategy {
	switch s {
	case "vector_search":
		return StrategyVector
	case "keyword_search":
		return StrategyKeyword
	case "hybrid_search":
		return StrategyHybrid
	default:
		return 0
	}
}

// RetrievalDecision is the retrieval strategist's choice for one step.
// Ephemeral: one per step, never stored.
type RetrievalDecision struct {
	Strategy      RetrievalStrategy
	Justification string
}

// PolicyAction is the continue/stop determination after a reflection.
type PolicyAction int

const (
	// PolicyContinue proceeds to the next planned step.
	PolicyContinue PolicyAction = iota + 1
	// PolicyStop finalizes the answer from accumulated history.
	PolicyStop
)

// String returns the wire name of the action.
func (a PolicyAction) String() string {
	switch a {
	case PolicyContinue:
		return "continue"
	case PolicyStop:
		return "stop"
	default:
		return "unknown"
	}
}

// PolicyActionFromString parses a policy-agent-produced action name.
func PolicyActionFromString(s string) PolicyAction {
	switch s {
	case "continue":
		return PolicyContinue
	case "stop":
		return PolicyStop
	default:
		return 0
	}
}

// PolicyDecision is the policy agent's advisory continue/stop decision.
// Ephemeral: one per reflection cycle.
type PolicyDecision struct {
	Decision  PolicyAction
	Reasoning string
}
