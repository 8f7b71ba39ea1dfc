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

package main

import (
	"fmt"
	"io"

	"github.com/poiesic/researchit/agent"
	"github.com/poiesic/researchit/core"
)

// printMonitor streams research progress to the terminal.
type printMonitor struct {
	out io.Writer
}

var _ agent.RunMonitor = (*printMonitor)(nil)

func (m *printMonitor) Start(question string) {
	fmt.Fprintf(m.out, "Researching: %s\n", question)
}

func (m *printMonitor) PlanReady(plan *core.Plan) {
	fmt.Fprintf(m.out, "Plan (%d steps):\n", len(plan.Steps))
	for i, step := range plan.Steps {
		fmt.Fprintf(m.out, "  %d. [%s] %s\n", i+1, step.Tool.String(), step.SubQuestion)
	}
}

func (m *printMonitor) RetrievalReady(stepIndex int, strategy core.RetrievalStrategy, docs []*core.Document) {
	fmt.Fprintf(m.out, "Step %d: retrieved %d documents (%s)\n", stepIndex+1, len(docs), strategy.String())
	for _, doc := range docs {
		fmt.Fprintf(m.out, "  - %s\n", doc.Attribution())
	}
}

func (m *printMonitor) ContextDistilled(stepIndex int, context string) {
	fmt.Fprintf(m.out, "Step %d: distilled %d characters of context\n", stepIndex+1, len(context))
}

func (m *printMonitor) ReflectionReady(pastStep *core.PastStep) {
	fmt.Fprintf(m.out, "Step %d: %s\n", pastStep.StepIndex, pastStep.Summary)
}

func (m *printMonitor) PolicyDecided(action core.PolicyAction, reason string) {
	fmt.Fprintf(m.out, "Policy: %s (%s)\n", action.String(), reason)
}

func (m *printMonitor) AnswerReady(_ string) {
	fmt.Fprintln(m.out, "Synthesis complete")
}
