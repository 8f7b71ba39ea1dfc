package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/researchit/ai"
	aimock "github.com/poiesic/researchit/ai/mock"
	"github.com/poiesic/researchit/core"
	"github.com/poiesic/researchit/websearch"
	websearchmock "github.com/poiesic/researchit/websearch/mock"
)

// stubRetriever implements StrategyRetriever over a fixed result set.
type stubRetriever struct {
	docs         []*core.Document
	err          error
	searchCalls  int
	lastStrategy core.RetrievalStrategy
	lastSection  string
}

func (r *stubRetriever) VectorSearch(ctx context.Context, query, section string, topK int) ([]*core.Document, error) {
	r.searchCalls++
	r.lastSection = section
	return r.docs, r.err
}

func (r *stubRetriever) Search(ctx context.Context, strategy core.RetrievalStrategy, query, section string, topK int) ([]*core.Document, error) {
	r.searchCalls++
	r.lastStrategy = strategy
	r.lastSection = section
	return r.docs, r.err
}

// vectorOnlyRetriever implements only the minimal Retriever surface.
type vectorOnlyRetriever struct {
	docs        []*core.Document
	searchCalls int
}

func (r *vectorOnlyRetriever) VectorSearch(ctx context.Context, query, section string, topK int) ([]*core.Document, error) {
	r.searchCalls++
	return r.docs, nil
}

// recordingMonitor captures the event sequence of a run.
type recordingMonitor struct {
	events    []string
	pastSteps []*core.PastStep
	reasons   []string
	answer    string
}

func (m *recordingMonitor) Start(question string) {
	m.events = append(m.events, "start")
}

func (m *recordingMonitor) PlanReady(plan *core.Plan) {
	m.events = append(m.events, fmt.Sprintf("plan:%d", len(plan.Steps)))
}

func (m *recordingMonitor) RetrievalReady(stepIndex int, strategy core.RetrievalStrategy, docs []*core.Document) {
	m.events = append(m.events, fmt.Sprintf("retrieval:%d:%d", stepIndex, len(docs)))
}

func (m *recordingMonitor) ContextDistilled(stepIndex int, context string) {
	m.events = append(m.events, fmt.Sprintf("distill:%d", stepIndex))
}

func (m *recordingMonitor) ReflectionReady(pastStep *core.PastStep) {
	m.pastSteps = append(m.pastSteps, pastStep)
	m.events = append(m.events, fmt.Sprintf("reflect:%d", pastStep.StepIndex))
}

func (m *recordingMonitor) PolicyDecided(action core.PolicyAction, reason string) {
	m.reasons = append(m.reasons, reason)
	m.events = append(m.events, "policy:"+action.String())
}

func (m *recordingMonitor) AnswerReady(answer string) {
	m.answer = answer
	m.events = append(m.events, "answer")
}

func testDocs() []*core.Document {
	return []*core.Document{
		{Id: core.ID(1), Content: "first finding", Section: "A"},
		{Id: core.ID(2), Content: "second finding", Section: "A"},
		{Id: core.ID(3), Content: "third finding", Section: "B"},
		{Id: core.ID(4), Content: "fourth finding", Section: "B"},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, provider ai.Provider, retriever Retriever, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	engine, err := NewEngine(provider, retriever, websearchmock.NewMockSearcher(), opts...)
	require.NoError(t, err)
	return engine
}

func TestTwoStepRunEventSequence(t *testing.T) {
	provider := aimock.NewMockProvider()
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	monitor := &recordingMonitor{}
	answer, err := engine.AnswerWithMonitor(context.Background(), "what is hybrid retrieval?", monitor)
	require.NoError(t, err)
	require.NotEmpty(t, answer)

	// Default mock plan has two steps: documents then web
	require.Len(t, monitor.pastSteps, 2)
	assert.Equal(t, 1, monitor.pastSteps[0].StepIndex)
	assert.Equal(t, 2, monitor.pastSteps[1].StepIndex)
	assert.Equal(t, answer, monitor.answer)

	// Event order: one retrieval/distill/reflect/policy group per step,
	// answer last.
	require.Len(t, monitor.events, 11)
	assert.Equal(t, "start", monitor.events[0])
	assert.Equal(t, "plan:2", monitor.events[1])
	assert.Equal(t, "retrieval:0:4", monitor.events[2])
	assert.Equal(t, "distill:0", monitor.events[3])
	assert.Equal(t, "reflect:1", monitor.events[4])
	assert.Equal(t, "policy:continue", monitor.events[5])
	assert.Equal(t, "retrieval:1:5", monitor.events[6])
	assert.Equal(t, "distill:1", monitor.events[7])
	assert.Equal(t, "reflect:2", monitor.events[8])
	assert.Equal(t, "policy:stop", monitor.events[9])
	assert.Equal(t, "answer", monitor.events[10])
}

func TestStructuralStopOverridesAdvisoryContinue(t *testing.T) {
	provider := aimock.NewMockProvider()
	// Default mock policy always advises continue
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	monitor := &recordingMonitor{}
	_, err := engine.AnswerWithMonitor(context.Background(), "question", monitor)
	require.NoError(t, err)

	require.Len(t, monitor.pastSteps, 2, "run must stop when the plan is exhausted")
	require.NotEmpty(t, monitor.reasons)
	assert.Equal(t, reasonPlanDone, monitor.reasons[len(monitor.reasons)-1],
		"structural reason must be surfaced, not the advisory verdict")

	// The advisory model is consulted only while another step is possible
	assert.Equal(t, 1, provider.GetMockReasoner().PolicyCalls())
}

func TestMaxStepsBoundsRun(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		steps := make([]core.Step, 5)
		for i := range steps {
			steps[i] = core.Step{
				SubQuestion: fmt.Sprintf("sub-question %d", i+1),
				Tool:        core.ToolSearchDocuments,
			}
		}
		return &core.Plan{Steps: steps}, nil
	}
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	monitor := &recordingMonitor{}
	_, err := engine.AnswerWithMonitor(context.Background(), "question", monitor, WithMaxSteps(2))
	require.NoError(t, err)

	require.Len(t, monitor.pastSteps, 2)
	assert.Equal(t, reasonMaxSteps, monitor.reasons[len(monitor.reasons)-1])
}

func TestMaxStepsZeroFailsWithoutContext(t *testing.T) {
	provider := aimock.NewMockProvider()
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	_, err := engine.Answer(context.Background(), "question", WithMaxSteps(0))
	assert.ErrorIs(t, err, ErrNoContext)
	assert.Zero(t, retriever.searchCalls, "no retrieval may run with a zero step budget")
}

func TestStepIndexIncrementsOncePerReflection(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		return &core.Plan{Steps: []core.Step{
			{SubQuestion: "one", Tool: core.ToolSearchDocuments},
			{SubQuestion: "two", Tool: core.ToolSearchDocuments},
			{SubQuestion: "three", Tool: core.ToolSearchDocuments},
		}}, nil
	}
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	monitor := &recordingMonitor{}
	_, err := engine.AnswerWithMonitor(context.Background(), "question", monitor)
	require.NoError(t, err)

	require.Len(t, monitor.pastSteps, 3)
	for i, past := range monitor.pastSteps {
		assert.Equal(t, i+1, past.StepIndex)
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() (string, []*core.PastStep) {
		provider := aimock.NewMockProvider()
		retriever := &stubRetriever{docs: testDocs()}
		engine := newTestEngine(t, provider, retriever)

		monitor := &recordingMonitor{}
		answer, err := engine.AnswerWithMonitor(context.Background(), "deterministic question", monitor)
		require.NoError(t, err)
		return answer, monitor.pastSteps
	}

	answer1, steps1 := run()
	answer2, steps2 := run()

	assert.Equal(t, answer1, answer2)
	require.Equal(t, len(steps1), len(steps2))
	for i := range steps1 {
		assert.Equal(t, steps1[i].SubQuestion, steps2[i].SubQuestion)
		assert.Equal(t, steps1[i].Summary, steps2[i].Summary)
	}
}

func TestWebSearchFailureYieldsEmptyResults(t *testing.T) {
	provider := aimock.NewMockProvider()
	retriever := &stubRetriever{docs: testDocs()}

	web := websearchmock.NewMockSearcher()
	web.SearchFunc = func(ctx context.Context, query string, maxResults int) ([]websearch.Result, error) {
		return nil, errors.New("network down")
	}

	engine, err := NewEngine(provider, retriever, web, WithLogger(quietLogger()))
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	answer, err := engine.AnswerWithMonitor(context.Background(), "question", monitor)
	require.NoError(t, err, "web failure must not abort the run")
	assert.NotEmpty(t, answer)

	// Second step is the web step; its retrieval reports zero documents
	require.Len(t, monitor.pastSteps, 2)
	assert.Empty(t, monitor.pastSteps[1].RetrievedDocs)
}

func TestNilWebBackend(t *testing.T) {
	provider := aimock.NewMockProvider()
	retriever := &stubRetriever{docs: testDocs()}

	engine, err := NewEngine(provider, retriever, nil, WithLogger(quietLogger()))
	require.NoError(t, err)

	answer, err := engine.Answer(context.Background(), "question")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
}

func TestRetrievalFailureYieldsEmptyResults(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		return &core.Plan{Steps: []core.Step{
			{SubQuestion: "only step", Tool: core.ToolSearchDocuments},
		}}, nil
	}
	retriever := &stubRetriever{err: errors.New("index corrupted")}
	engine := newTestEngine(t, provider, retriever)

	monitor := &recordingMonitor{}
	answer, err := engine.AnswerWithMonitor(context.Background(), "question", monitor)
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	require.Len(t, monitor.pastSteps, 1)
	assert.Empty(t, monitor.pastSteps[0].RetrievedDocs)
}

func TestVectorOnlyRetrieverSkipsStrategySelection(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		return &core.Plan{Steps: []core.Step{
			{SubQuestion: "only step", Tool: core.ToolSearchDocuments},
		}}, nil
	}
	strategyCalled := false
	provider.GetMockReasoner().SelectStrategyFunc = func(ctx context.Context, query string) (*core.RetrievalDecision, error) {
		strategyCalled = true
		return &core.RetrievalDecision{Strategy: core.StrategyHybrid}, nil
	}

	retriever := &vectorOnlyRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	_, err := engine.Answer(context.Background(), "question")
	require.NoError(t, err)

	assert.False(t, strategyCalled)
	assert.Equal(t, 1, retriever.searchCalls)
}

func TestStrategistFailureDefaultsToHybrid(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		return &core.Plan{Steps: []core.Step{
			{SubQuestion: "only step", Tool: core.ToolSearchDocuments},
		}}, nil
	}
	provider.GetMockReasoner().SelectStrategyFunc = func(ctx context.Context, query string) (*core.RetrievalDecision, error) {
		return nil, errors.New("strategist offline")
	}
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	_, err := engine.Answer(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, core.StrategyHybrid, retriever.lastStrategy)
}

func TestPlannerFailureIsFatal(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		return nil, errors.New("model unavailable")
	}
	engine := newTestEngine(t, provider, &stubRetriever{docs: testDocs()})

	_, err := engine.Answer(context.Background(), "question")
	assert.ErrorIs(t, err, ErrPlanningFailed)
}

func TestSynthesisFailureIsFatal(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().SynthesizeFunc = func(ctx context.Context, question, context string) (string, error) {
		return "", errors.New("model unavailable")
	}
	engine := newTestEngine(t, provider, &stubRetriever{docs: testDocs()})

	_, err := engine.Answer(context.Background(), "question")
	assert.ErrorIs(t, err, ErrSynthesisFailed)
}

func TestPolicyFailOpenWithinBounds(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().DecidePolicyFunc = func(ctx context.Context, req ai.PolicyRequest) (*core.PolicyDecision, error) {
		return nil, errors.New("policy model offline")
	}
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	monitor := &recordingMonitor{}
	_, err := engine.AnswerWithMonitor(context.Background(), "question", monitor)
	require.NoError(t, err)

	// Both plan steps still run: the failed advisory check fails open
	assert.Len(t, monitor.pastSteps, 2)
}

func TestRecursionCeilingWithoutFindings(t *testing.T) {
	provider := aimock.NewMockProvider()
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	// Ceiling hits during the first retrieval group, before any reflection
	_, err := engine.Answer(context.Background(), "question", WithRecursionLimit(3))
	assert.ErrorIs(t, err, ErrRecursionLimit)
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestRecursionCeilingRecoversWithFindings(t *testing.T) {
	provider := aimock.NewMockProvider()
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	// Ceiling hits after the first reflection; the run salvages what it has
	answer, err := engine.Answer(context.Background(), "question", WithRecursionLimit(7))
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Equal(t, 1, provider.GetMockReasoner().SynthesizeCalls())
}

func TestCancellation(t *testing.T) {
	provider := aimock.NewMockProvider()
	engine := newTestEngine(t, provider, &stubRetriever{docs: testDocs()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Answer(ctx, "question")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, provider.GetMockReasoner().PlanCalls())
}

func TestSectionFilterPropagates(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		return &core.Plan{Steps: []core.Step{
			{SubQuestion: "only step", Tool: core.ToolSearchDocuments, DocumentSection: "Methods"},
		}}, nil
	}
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	_, err := engine.Answer(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "Methods", retriever.lastSection)
}

func TestSynthesisContextCarriesRetrievedFindings(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		return &core.Plan{Steps: []core.Step{
			{SubQuestion: "only step", Tool: core.ToolSearchDocuments},
		}}, nil
	}
	var synthesisContext string
	provider.GetMockReasoner().SynthesizeFunc = func(ctx context.Context, question, context string) (string, error) {
		synthesisContext = context
		return "answer", nil
	}

	retriever := &stubRetriever{docs: []*core.Document{
		{Id: core.ID(1), Content: "grid capacity grew 12% in 2025", Section: "Results", Source: "report.txt"},
		{Id: core.ID(2), Content: "storage costs fell sharply", Source: "web-roundup.txt"},
	}}
	engine := newTestEngine(t, provider, retriever)

	_, err := engine.Answer(context.Background(), "question")
	require.NoError(t, err)

	// Synthesis sees the documents themselves, cited per step, not just
	// the reflection summaries.
	assert.Contains(t, synthesisContext, "--- Findings from Research Step 1 ---")
	assert.Contains(t, synthesisContext, "Source: Results\nContent: grid capacity grew 12% in 2025")
	assert.Contains(t, synthesisContext, "Source: web-roundup.txt\nContent: storage costs fell sharply")
}

func TestDistillReceivesSubQuestion(t *testing.T) {
	provider := aimock.NewMockProvider()
	var distillQuestions []string
	provider.GetMockReasoner().DistillFunc = func(ctx context.Context, question, context string) (string, error) {
		distillQuestions = append(distillQuestions, question)
		return context, nil
	}

	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	_, err := engine.Answer(context.Background(), "original question")
	require.NoError(t, err)

	require.Len(t, distillQuestions, 2)
	assert.Equal(t, "Background: original question", distillQuestions[0])
	assert.Equal(t, "Recent developments: original question", distillQuestions[1])
}

func TestUnknownToolRoutesToFinalize(t *testing.T) {
	provider := aimock.NewMockProvider()
	provider.GetMockReasoner().GeneratePlanFunc = func(ctx context.Context, question string) (*core.Plan, error) {
		return &core.Plan{Steps: []core.Step{
			{SubQuestion: "valid step", Tool: core.ToolSearchDocuments},
			{SubQuestion: "bad step", Tool: core.ToolType(99)},
		}}, nil
	}
	retriever := &stubRetriever{docs: testDocs()}
	engine := newTestEngine(t, provider, retriever)

	monitor := &recordingMonitor{}
	answer, err := engine.AnswerWithMonitor(context.Background(), "question", monitor)
	require.NoError(t, err)
	assert.NotEmpty(t, answer)

	// The step with the unrecognized tool never retrieves.
	assert.Equal(t, 1, retriever.searchCalls)
	assert.Len(t, monitor.pastSteps, 1)
}

func TestEngineConstruction(t *testing.T) {
	provider := aimock.NewMockProvider()

	_, err := NewEngine(nil, &stubRetriever{}, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)

	_, err = NewEngine(provider, nil, nil)
	assert.ErrorIs(t, err, ErrRetrieverRequired)
}
