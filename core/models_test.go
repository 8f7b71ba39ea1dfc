package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestToolType_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tool ToolType
		want string
	}{
		{name: "search documents", tool: ToolSearchDocuments, want: "search_documents"},
		{name: "search web", tool: ToolSearchWeb, want: "search_web"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tool.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := ToolTypeFromString(tt.want); got != tt.tool {
				t.Errorf("ToolTypeFromString(%q) = %v, want %v", tt.want, got, tt.tool)
			}
		})
	}
}

func TestToolTypeFromString_Unknown(t *testing.T) {
	if got := ToolTypeFromString("search_everything"); got != 0 {
		t.Errorf("ToolTypeFromString() = %v, want 0 for unknown tool", got)
	}
}

func TestRetrievalStrategy_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		strategy RetrievalStrategy
		want     string
	}{
		{name: "vector", strategy: StrategyVector, want: "vector_search"},
		{name: "keyword", strategy: StrategyKeyword, want: "keyword_search"},
		{name: "hybrid", strategy: StrategyHybrid, want: "hybrid_search"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.strategy.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := RetrievalStrategyFromString(tt.want); got != tt.strategy {
				t.Errorf("RetrievalStrategyFromString(%q) = %v, want %v", tt.want, got, tt.strategy)
			}
		})
	}
}

func TestPolicyAction_RoundTrip(t *testing.T) {
	if PolicyActionFromString("continue") != PolicyContinue {
		t.Error("PolicyActionFromString(continue) mismatch")
	}
	if PolicyActionFromString("stop") != PolicyStop {
		t.Error("PolicyActionFromString(stop) mismatch")
	}
	if PolicyActionFromString("maybe") != 0 {
		t.Error("PolicyActionFromString(maybe) should be 0")
	}
}

func TestDocument_Attribution(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "section preferred",
			doc:  Document{Section: "Results", Source: "report.txt"},
			want: "Results",
		},
		{
			name: "source fallback",
			doc:  Document{Source: "https://example.com/page"},
			want: "https://example.com/page",
		},
		{
			name: "unknown fallback",
			doc:  Document{},
			want: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Attribution(); got != tt.want {
				t.Errorf("Attribution() = %q, want %q", got, tt.want)
			}
		})
	}
}
