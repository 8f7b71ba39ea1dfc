package core

import (
	"fmt"
	"strings"
)

// PastContext formats completed steps as a research-history string, in
// step order. This is the text threaded into the query rewriter and the
// policy agent as accumulated context.
func PastContext(pastSteps []PastStep) string {
	parts := make([]string, 0, len(pastSteps))
	for _, s := range pastSteps {
		parts = append(parts, fmt.Sprintf("Step %d: %s\nSummary: %s", s.StepIndex, s.SubQuestion, s.Summary))
	}
	return strings.Join(parts, "\n\n")
}

// FormatDocuments joins document contents with a separator for use as
// prompt context.
func FormatDocuments(docs []*Document) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		parts = append(parts, doc.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// FindingsContext formats the documents gathered by completed steps for
// final synthesis: a block per step, in step order, each retrieved
// document cited with its attribution.
func FindingsContext(pastSteps []PastStep) string {
	var b strings.Builder
	for i, s := range pastSteps {
		fmt.Fprintf(&b, "\n--- Findings from Research Step %d ---\n", i+1)
		for _, doc := range s.RetrievedDocs {
			if doc == nil {
				continue
			}
			fmt.Fprintf(&b, "Source: %s\nContent: %s\n\n", doc.Attribution(), doc.Content)
		}
	}
	return b.String()
}

// Attribution returns the source string used when citing a document in
// the final context: the section when known, otherwise the source,
// otherwise "Unknown".
func (d *Document) Attribution() string {
	if d.Section != "" {
		return d.Section
	}
	if d.Source != "" {
		return d.Source
	}
	return "Unknown"
}
