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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/researchit/ai"
	"github.com/poiesic/researchit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Reasoner implements ai.Reasoner using OpenAI-compatible chat APIs.
// All seven agent roles share one underlying client; each role formats its
// own prompt and parses its own response shape.
type Reasoner struct {
	client llms.Model
	logger *slog.Logger
}

// Wire types for structured role responses.
type planStep struct {
	SubQuestion     string   `json:"sub_question"`
	Justification   string   `json:"justification"`
	Tool            string   `json:"tool"`
	Keywords        []string `json:"keywords"`
	DocumentSection string   `json:"document_section"`
}

type planResponse struct {
	Steps []planStep `json:"steps"`
}

type strategyResponse struct {
	Strategy      string `json:"strategy"`
	Justification string `json:"justification"`
}

type policyResponse struct {
	Decision  string `json:"decision"`
	Reasoning string `json:"reasoning"`
}

// newReasoner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newReasoner(config *ai.Config) (*Reasoner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ReasoningHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ReasoningModel),
	)
	if err != nil {
		return nil, err
	}

	return &Reasoner{
		client: client,
		logger: slog.Default().With("component", "openai-reasoner"),
	}, nil
}

// NewReasoner creates a new reasoner using the provided configuration.
//
// Returns ai.Reasoner interface to enforce abstraction.
func NewReasoner(config *ai.Config) (ai.Reasoner, error) {
	return newReasoner(config)
}

// generate performs a single chat completion with a system and user message.
func (r *Reasoner) generate(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(system),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(user),
			},
		},
	}

	opts := []llms.CallOption{llms.WithTemperature(0.0)}
	if jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}

	response, err := r.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		r.logger.Debug("no choices returned from model")
		return "", nil
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}

// generateJSON performs a completion in JSON mode and unmarshals the result
// into out. Tries up to 3 times in case of malformed JSON, repairing common
// formatting issues between attempts.
func (r *Reasoner) generateJSON(ctx context.Context, system, user string, out any) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		responseText, err := r.generate(ctx, system, user, true)
		if err != nil {
			r.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		// Strip markdown code fences if present
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			r.logger.Warn("error parsing structured response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	r.logger.Error("failed to parse structured response after retries", "err", lastErr)
	return lastErr
}

// GeneratePlan breaks a question into an ordered multi-step research plan.
func (r *Reasoner) GeneratePlan(ctx context.Context, question string) (*core.Plan, error) {
	var resp planResponse
	user := fmt.Sprintf("Question: %s", question)
	if err := r.generateJSON(ctx, plannerPrompt, user, &resp); err != nil {
		return nil, err
	}

	plan := &core.Plan{Steps: make([]core.Step, 0, len(resp.Steps))}
	for _, s := range resp.Steps {
		plan.Steps = append(plan.Steps, core.Step{
			SubQuestion:     s.SubQuestion,
			Justification:   s.Justification,
			Tool:            core.ToolTypeFromString(s.Tool),
			Keywords:        s.Keywords,
			DocumentSection: s.DocumentSection,
		})
	}

	if err := core.ValidatePlan(plan); err != nil {
		return nil, err
	}

	r.logger.Debug("generated plan", "steps", len(plan.Steps))
	return plan, nil
}

// RewriteQuery turns a sub-question into an optimized search query.
func (r *Reasoner) RewriteQuery(ctx context.Context, subQuestion string, keywords []string, pastContext string) (string, error) {
	user := fmt.Sprintf("Sub-question: %s\nKeywords: %s\nPast context: %s\n\nProvide an optimized search query:",
		subQuestion, strings.Join(keywords, ", "), pastContext)

	query, err := r.generate(ctx, queryRewriterPrompt, user, false)
	if err != nil {
		return "", err
	}
	// Models sometimes quote the query they produce
	return strings.Trim(query, "\"'"), nil
}

// SelectStrategy picks a retrieval strategy for an optimized query.
func (r *Reasoner) SelectStrategy(ctx context.Context, query string) (*core.RetrievalDecision, error) {
	var resp strategyResponse
	user := fmt.Sprintf("Query: %s\n\nWhich retrieval strategy should be used?", query)
	if err := r.generateJSON(ctx, strategistPrompt, user, &resp); err != nil {
		return nil, err
	}

	decision := &core.RetrievalDecision{
		Strategy:      core.RetrievalStrategyFromString(resp.Strategy),
		Justification: resp.Justification,
	}
	if err := core.ValidateRetrievalStrategy(decision.Strategy); err != nil {
		return nil, err
	}
	return decision, nil
}

// Summarize condenses the distilled context of one step.
func (r *Reasoner) Summarize(ctx context.Context, subQuestion, context string) (string, error) {
	user := fmt.Sprintf("Sub-question: %s\n\nContext: %s\n\nSummary:", subQuestion, context)
	return r.generate(ctx, reflectorPrompt, user, false)
}

// Distill extracts only the context relevant to the question.
func (r *Reasoner) Distill(ctx context.Context, question, context string) (string, error) {
	user := fmt.Sprintf("Question: %s\n\nContext: %s\n\nDistilled context:", question, context)
	return r.generate(ctx, distillerPrompt, user, false)
}

// DecidePolicy makes the advisory continue/stop decision after a reflection cycle.
func (r *Reasoner) DecidePolicy(ctx context.Context, req ai.PolicyRequest) (*core.PolicyDecision, error) {
	var resp policyResponse
	user := fmt.Sprintf(`Original question: %s
Research history: %s
Current step: %d of %d
Total plan steps: %d

Should we continue or stop? Remember: If current_step >= total_steps, you MUST stop.`,
		req.OriginalQuestion, req.ResearchHistory, req.CurrentStep, req.MaxSteps, req.TotalSteps)

	if err := r.generateJSON(ctx, policyPrompt, user, &resp); err != nil {
		return nil, err
	}

	decision := &core.PolicyDecision{
		Decision:  core.PolicyActionFromString(resp.Decision),
		Reasoning: resp.Reasoning,
	}
	if err := core.ValidatePolicyAction(decision.Decision); err != nil {
		return nil, err
	}
	return decision, nil
}

// Synthesize produces the final answer from the aggregated research context.
func (r *Reasoner) Synthesize(ctx context.Context, question, context string) (string, error) {
	user := fmt.Sprintf("Original Question: %s\n\nResearch History and Context:\n%s", question, context)
	return r.generate(ctx, synthesizerPrompt, user, false)
}
