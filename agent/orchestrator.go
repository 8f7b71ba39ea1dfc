// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/researchit/ai"
	"github.com/poiesic/researchit/core"
	"github.com/poiesic/researchit/websearch"
)

// Retriever is the minimal document retrieval surface the engine needs.
type Retriever interface {
	// VectorSearch returns the topK documents most similar to the query.
	VectorSearch(ctx context.Context, query, section string, topK int) ([]*core.Document, error)
}

// StrategyRetriever additionally supports strategy-directed search.
// Engines holding one consult the strategist before each retrieval.
type StrategyRetriever interface {
	Retriever
	Search(ctx context.Context, strategy core.RetrievalStrategy, query, section string, topK int) ([]*core.Document, error)
}

// runState identifies a node of the research state machine.
type runState int

const (
	statePlan runState = iota
	stateChooseTool
	stateRetrieveDocs
	stateRetrieveWeb
	stateRerank
	stateCompress
	stateReflect
	stateFinalize
	stateEnd
)

func (s runState) String() string {
	switch s {
	case statePlan:
		return "plan"
	case stateChooseTool:
		return "choose_tool"
	case stateRetrieveDocs:
		return "retrieve_documents"
	case stateRetrieveWeb:
		return "retrieve_web"
	case stateRerank:
		return "rerank"
	case stateCompress:
		return "compress"
	case stateReflect:
		return "reflect"
	case stateFinalize:
		return "finalize"
	case stateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// session carries the mutable state of a single research run.
type session struct {
	question  string
	plan      *core.Plan
	pastSteps []core.PastStep

	// stepIndex is the zero-based index of the plan step being researched.
	// It advances only in reflect.
	stepIndex int

	retrieved []*core.Document
	reranked  []*core.Document
	distilled string
	answer    string

	transitions int
	config      RunConfig
	monitor     RunMonitor
}

// currentStep returns the plan step being researched.
func (s *session) currentStep() core.Step {
	return s.plan.Steps[s.stepIndex]
}

// Engine runs multi-step research over a document corpus and the web.
type Engine struct {
	reasoner  ai.Reasoner
	retriever Retriever
	web       websearch.Searcher
	reranker  Reranker
	defaults  RunConfig
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithReranker replaces the default truncating reranker.
func WithReranker(reranker Reranker) Option {
	return func(e *Engine) error {
		if reranker != nil {
			e.reranker = reranker
		}
		return nil
	}
}

// WithDefaults replaces the engine-level run configuration.
// Individual runs can still override values via RunOption.
func WithDefaults(config RunConfig) Option {
	return func(e *Engine) error {
		e.defaults = config
		return nil
	}
}

// NewEngine creates a research engine. The web searcher may be nil, in
// which case web research steps yield no documents.
func NewEngine(provider ai.Provider, retriever Retriever, web websearch.Searcher, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	e := &Engine{
		reasoner:  provider.Reasoner(),
		retriever: retriever,
		web:       web,
		reranker:  topNReranker{},
		defaults:  DefaultRunConfig(),
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.logger = e.logger.With("component", "engine")
	return e, nil
}

// Answer researches the question and returns a synthesized answer.
func (e *Engine) Answer(ctx context.Context, question string, opts ...RunOption) (string, error) {
	return e.AnswerWithMonitor(ctx, question, nil, opts...)
}

// AnswerWithMonitor researches the question with monitoring. The monitor
// receives callbacks at each stage of the run.
func (e *Engine) AnswerWithMonitor(ctx context.Context, question string, monitor RunMonitor, opts ...RunOption) (string, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	config := e.defaults
	for _, opt := range opts {
		opt(&config)
	}

	s := &session{
		question: question,
		config:   config,
		monitor:  monitor,
	}

	monitor.Start(question)

	state := statePlan
	for state != stateEnd {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		s.transitions++
		if s.transitions > config.RecursionLimit {
			return e.recoverFromCeiling(ctx, s)
		}

		e.logger.Debug("entering state", "state", state.String(), "step", s.stepIndex)

		var err error
		switch state {
		case statePlan:
			state, err = e.plan(ctx, s)
		case stateChooseTool:
			state, err = e.chooseTool(s)
		case stateRetrieveDocs:
			state, err = e.retrieveDocuments(ctx, s)
		case stateRetrieveWeb:
			state, err = e.retrieveWeb(ctx, s)
		case stateRerank:
			state, err = e.rerank(ctx, s)
		case stateCompress:
			state, err = e.compress(ctx, s)
		case stateReflect:
			state, err = e.reflect(ctx, s)
		case stateFinalize:
			state, err = e.finalize(ctx, s)
		default:
			return "", fmt.Errorf("invalid state %d", state)
		}
		if err != nil {
			return "", err
		}
	}

	return s.answer, nil
}

// recoverFromCeiling salvages a run that hit the transition ceiling.
// Findings already gathered are synthesized directly; a run with nothing
// gathered fails.
func (e *Engine) recoverFromCeiling(ctx context.Context, s *session) (string, error) {
	e.logger.Warn("transition ceiling reached", "transitions", s.transitions, "pastSteps", len(s.pastSteps))

	if s.answer != "" {
		return s.answer, nil
	}
	if len(s.pastSteps) > 0 {
		if _, err := e.finalize(ctx, s); err != nil {
			return "", err
		}
		return s.answer, nil
	}
	return "", fmt.Errorf("%w: %w", ErrRecursionLimit, ErrNoContext)
}

// plan asks the planner to decompose the question into research steps.
// Planner failure is fatal: without a plan there is nothing to research.
func (e *Engine) plan(ctx context.Context, s *session) (runState, error) {
	plan, err := e.reasoner.GeneratePlan(ctx, s.question)
	if err != nil {
		return stateEnd, fmt.Errorf("%w: %w", ErrPlanningFailed, err)
	}

	s.plan = plan
	s.monitor.PlanReady(plan)
	e.logger.Info("research plan ready", "steps", len(plan.Steps))
	return stateChooseTool, nil
}

// chooseTool routes to the retrieval state for the current step, or to
// finalization when the plan or the step budget is exhausted. A step
// carrying an unrecognized tool also finalizes rather than guessing.
func (e *Engine) chooseTool(s *session) (runState, error) {
	if s.plan == nil || s.stepIndex >= len(s.plan.Steps) || s.stepIndex >= s.config.MaxSteps {
		return stateFinalize, nil
	}

	switch s.currentStep().Tool {
	case core.ToolSearchDocuments:
		return stateRetrieveDocs, nil
	case core.ToolSearchWeb:
		return stateRetrieveWeb, nil
	default:
		e.logger.Warn("unknown tool in plan step, finalizing", "step", s.stepIndex, "tool", int(s.currentStep().Tool))
		return stateFinalize, nil
	}
}

// rewriteQuery turns the current step's sub-question into a standalone
// retrieval query. Rewriter failure falls back to the raw sub-question.
func (e *Engine) rewriteQuery(ctx context.Context, s *session) string {
	step := s.currentStep()
	query, err := e.reasoner.RewriteQuery(ctx, step.SubQuestion, step.Keywords, core.PastContext(s.pastSteps))
	if err != nil || query == "" {
		e.logger.Warn("query rewrite failed, using sub-question", "err", err)
		return step.SubQuestion
	}
	return query
}

// retrieveDocuments searches the indexed corpus for the current step.
// Strategy selection and retrieval failures degrade rather than abort:
// a failed strategist defaults to hybrid, a failed search yields no
// documents.
func (e *Engine) retrieveDocuments(ctx context.Context, s *session) (runState, error) {
	step := s.currentStep()
	query := e.rewriteQuery(ctx, s)

	var docs []*core.Document
	var strategy core.RetrievalStrategy

	if sr, ok := e.retriever.(StrategyRetriever); ok {
		strategy = core.StrategyHybrid
		decision, err := e.reasoner.SelectStrategy(ctx, query)
		if err != nil {
			e.logger.Warn("strategy selection failed, using hybrid", "err", err)
		} else {
			strategy = decision.Strategy
		}

		docs, err = sr.Search(ctx, strategy, query, step.DocumentSection, s.config.TopKRetrieval)
		if err != nil {
			e.logger.Warn("document retrieval failed", "query", query, "err", err)
			docs = nil
		}
	} else {
		var err error
		docs, err = e.retriever.VectorSearch(ctx, query, step.DocumentSection, s.config.TopKRetrieval)
		if err != nil {
			e.logger.Warn("document retrieval failed", "query", query, "err", err)
			docs = nil
		}
	}

	s.retrieved = docs
	s.monitor.RetrievalReady(s.stepIndex, strategy, docs)
	e.logger.Info("documents retrieved", "step", s.stepIndex, "strategy", strategy.String(), "count", len(docs))
	return stateRerank, nil
}

// retrieveWeb searches the web for the current step. A missing backend
// or a failed search yields no documents; the run continues either way.
func (e *Engine) retrieveWeb(ctx context.Context, s *session) (runState, error) {
	query := e.rewriteQuery(ctx, s)

	var docs []*core.Document
	if e.web == nil {
		e.logger.Warn("no web search backend configured", "query", query)
	} else {
		results, err := e.web.Search(ctx, query, s.config.WebSearchResults)
		if err != nil {
			e.logger.Warn("web search failed", "query", query, "err", err)
		} else {
			docs = websearch.ToDocuments(results)
		}
	}

	s.retrieved = docs
	s.monitor.RetrievalReady(s.stepIndex, 0, docs)
	e.logger.Info("web results retrieved", "step", s.stepIndex, "count", len(docs))
	return stateRerank, nil
}

// rerank keeps the topN most relevant of the retrieved documents.
// Reranker failure keeps the retrieval ranking.
func (e *Engine) rerank(ctx context.Context, s *session) (runState, error) {
	reranked, err := e.reranker.Rerank(ctx, s.currentStep().SubQuestion, s.retrieved, s.config.TopNRerank)
	if err != nil {
		e.logger.Warn("rerank failed, keeping retrieval order", "err", err)
		reranked = s.retrieved
		if s.config.TopNRerank < len(reranked) {
			reranked = reranked[:s.config.TopNRerank]
		}
	}

	s.reranked = reranked
	return stateCompress, nil
}

// compress distills the reranked documents into context relevant to the
// current step's sub-question. Distiller failure keeps the formatted
// documents verbatim.
func (e *Engine) compress(ctx context.Context, s *session) (runState, error) {
	formatted := core.FormatDocuments(s.reranked)

	distilled := formatted
	if formatted != "" {
		var err error
		distilled, err = e.reasoner.Distill(ctx, s.currentStep().SubQuestion, formatted)
		if err != nil {
			e.logger.Warn("context distillation failed, keeping raw context", "err", err)
			distilled = formatted
		}
	}

	s.distilled = distilled
	s.monitor.ContextDistilled(s.stepIndex, distilled)
	return stateReflect, nil
}

// reflect summarizes the step's findings, records it as a past step,
// advances the step index, and consults the termination policy.
func (e *Engine) reflect(ctx context.Context, s *session) (runState, error) {
	step := s.currentStep()

	summary, err := e.reasoner.Summarize(ctx, step.SubQuestion, s.distilled)
	if err != nil {
		e.logger.Warn("reflection failed, keeping distilled context", "err", err)
		summary = s.distilled
	}

	past := core.PastStep{
		StepIndex:     s.stepIndex + 1,
		SubQuestion:   step.SubQuestion,
		RetrievedDocs: s.reranked,
		Summary:       summary,
	}
	s.pastSteps = append(s.pastSteps, past)
	s.stepIndex++
	s.retrieved = nil
	s.reranked = nil
	s.distilled = ""

	s.monitor.ReflectionReady(&past)

	continueResearch, reason := decidePolicy(ctx, e.reasoner, e.logger, s.question, s.plan, s.pastSteps, s.stepIndex, s.config.MaxSteps)

	action := core.PolicyStop
	if continueResearch {
		action = core.PolicyContinue
	}
	s.monitor.PolicyDecided(action, reason)
	e.logger.Info("policy decided", "action", action.String(), "reason", reason, "step", s.stepIndex)

	if continueResearch {
		return stateChooseTool, nil
	}
	return stateFinalize, nil
}

// finalize synthesizes the answer from the accumulated research.
// A run that gathered nothing fails with ErrNoContext rather than
// synthesizing from thin air.
func (e *Engine) finalize(ctx context.Context, s *session) (runState, error) {
	if len(s.pastSteps) == 0 {
		return stateEnd, ErrNoContext
	}

	answer, err := e.reasoner.Synthesize(ctx, s.question, core.FindingsContext(s.pastSteps))
	if err != nil {
		return stateEnd, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}

	s.answer = answer
	s.monitor.AnswerReady(answer)
	e.logger.Info("answer ready", "steps", len(s.pastSteps))
	return stateEnd, nil
}
