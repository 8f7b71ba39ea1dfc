package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/researchit/ai"
	"github.com/poiesic/researchit/core"
)

// MockReasoner is a test double for ai.Reasoner.
// Every role can be overridden via a function field; unset roles fall back
// to deterministic defaults, so running the same question twice yields
// identical results.
type MockReasoner struct {
	GeneratePlanFunc   func(ctx context.Context, question string) (*core.Plan, error)
	RewriteQueryFunc   func(ctx context.Context, subQuestion string, keywords []string, pastContext string) (string, error)
	SelectStrategyFunc func(ctx context.Context, query string) (*core.RetrievalDecision, error)
	SummarizeFunc      func(ctx context.Context, subQuestion, context string) (string, error)
	DistillFunc        func(ctx context.Context, question, context string) (string, error)
	DecidePolicyFunc   func(ctx context.Context, req ai.PolicyRequest) (*core.PolicyDecision, error)
	SynthesizeFunc     func(ctx context.Context, question, context string) (string, error)

	planCalls       int
	rewriteCalls    int
	strategyCalls   int
	summarizeCalls  int
	distillCalls    int
	policyCalls     int
	synthesizeCalls int
}

// NewMockReasoner creates a mock reasoner with deterministic defaults.
// Note: Returns concrete type to allow behavior injection and assertions.
func NewMockReasoner() *MockReasoner {
	return &MockReasoner{}
}

// GeneratePlan returns a fixed two-step plan unless overridden.
func (m *MockReasoner) GeneratePlan(ctx context.Context, question string) (*core.Plan, error) {
	m.planCalls++

	if m.GeneratePlanFunc != nil {
		return m.GeneratePlanFunc(ctx, question)
	}

	return &core.Plan{Steps: []core.Step{
		{
			SubQuestion:   "Background: " + question,
			Justification: "establish baseline facts",
			Tool:          core.ToolSearchDocuments,
			Keywords:      strings.Fields(question),
		},
		{
			SubQuestion:   "Recent developments: " + question,
			Justification: "supplement with current information",
			Tool:          core.ToolSearchWeb,
			Keywords:      strings.Fields(question),
		},
	}}, nil
}

// RewriteQuery echoes the sub-question with keywords appended.
func (m *MockReasoner) RewriteQuery(ctx context.Context, subQuestion string, keywords []string, pastContext string) (string, error) {
	m.rewriteCalls++

	if m.RewriteQueryFunc != nil {
		return m.RewriteQueryFunc(ctx, subQuestion, keywords, pastContext)
	}

	if len(keywords) == 0 {
		return subQuestion, nil
	}
	return subQuestion + " " + strings.Join(keywords, " "), nil
}

// SelectStrategy always picks hybrid search unless overridden.
func (m *MockReasoner) SelectStrategy(ctx context.Context, query string) (*core.RetrievalDecision, error) {
	m.strategyCalls++

	if m.SelectStrategyFunc != nil {
		return m.SelectStrategyFunc(ctx, query)
	}

	return &core.RetrievalDecision{
		Strategy:      core.StrategyHybrid,
		Justification: "default mock strategy",
	}, nil
}

// Summarize produces a deterministic summary line.
func (m *MockReasoner) Summarize(ctx context.Context, subQuestion, context string) (string, error) {
	m.summarizeCalls++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, subQuestion, context)
	}

	return fmt.Sprintf("Findings for %q (%d chars of context)", subQuestion, len(context)), nil
}

// Distill returns the context unchanged.
func (m *MockReasoner) Distill(ctx context.Context, question, context string) (string, error) {
	m.distillCalls++

	if m.DistillFunc != nil {
		return m.DistillFunc(ctx, question, context)
	}

	return context, nil
}

// DecidePolicy always advises continue unless overridden. Structural checks
// in the orchestrator are expected to bound this.
func (m *MockReasoner) DecidePolicy(ctx context.Context, req ai.PolicyRequest) (*core.PolicyDecision, error) {
	m.policyCalls++

	if m.DecidePolicyFunc != nil {
		return m.DecidePolicyFunc(ctx, req)
	}

	return &core.PolicyDecision{
		Decision:  core.PolicyContinue,
		Reasoning: "default mock policy",
	}, nil
}

// Synthesize produces a deterministic answer derived from its inputs.
func (m *MockReasoner) Synthesize(ctx context.Context, question, context string) (string, error) {
	m.synthesizeCalls++

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, question, context)
	}

	return fmt.Sprintf("Answer to %q based on %d chars of context", question, len(context)), nil
}

// PlanCalls returns the number of GeneratePlan invocations.
func (m *MockReasoner) PlanCalls() int { return m.planCalls }

// PolicyCalls returns the number of DecidePolicy invocations.
func (m *MockReasoner) PolicyCalls() int { return m.policyCalls }

// SynthesizeCalls returns the number of Synthesize invocations.
func (m *MockReasoner) SynthesizeCalls() int { return m.synthesizeCalls }

// Reset clears call counts and custom functions.
func (m *MockReasoner) Reset() {
	*m = MockReasoner{}
}
