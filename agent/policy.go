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
)

// Structural stop reasons. These take precedence over anything the
// advisory model says.
const (
	reasonMaxSteps = "maximum research steps reached"
	reasonNoPlan   = "no research plan available"
	reasonPlanDone = "all planned steps completed"
	reasonFailOpen = "policy check failed, continuing within plan bounds"
)

// withinBounds reports whether another research step is structurally
// allowed.
func withinBounds(plan *core.Plan, currentStepIndex, maxSteps int) bool {
	return plan != nil &&
		len(plan.Steps) > 0 &&
		currentStepIndex < len(plan.Steps) &&
		currentStepIndex < maxSteps
}

// decidePolicy determines whether research should continue after a
// completed step. Structural checks are authoritative: the hard step
// ceiling, a missing plan, and plan exhaustion all stop the run without
// consulting the model. Only when every structural check allows another
// step is the model asked; its continue verdict is re-verified against
// the bounds before being honored, and an advisory failure fails open:
// the structural checks above already guarantee the next step is allowed.
func decidePolicy(ctx context.Context, reasoner ai.Reasoner, logger *slog.Logger, question string, plan *core.Plan, pastSteps []core.PastStep, currentStepIndex, maxSteps int) (bool, string) {
	if currentStepIndex >= maxSteps {
		return false, reasonMaxSteps
	}
	if plan == nil || len(plan.Steps) == 0 {
		return false, reasonNoPlan
	}
	if currentStepIndex >= len(plan.Steps) {
		return false, reasonPlanDone
	}

	// The bound the model reasons about is the effective one: a plan
	// shorter than maxSteps ends when the plan does.
	decision, err := reasoner.DecidePolicy(ctx, ai.PolicyRequest{
		OriginalQuestion: question,
		ResearchHistory:  core.PastContext(pastSteps),
		CurrentStep:      currentStepIndex,
		MaxSteps:         min(maxSteps, len(plan.Steps)),
		TotalSteps:       len(plan.Steps),
	})
	if err != nil {
		logger.Warn("advisory policy check failed", "err", err)
		return true, reasonFailOpen
	}

	if decision.Decision == core.PolicyStop {
		return false, decision.Reasoning
	}

	// The model can only confirm continuation, never extend the bounds
	if !withinBounds(plan, currentStepIndex, maxSteps) {
		return false, reasonPlanDone
	}

	reason := decision.Reasoning
	if reason == "" {
		reason = fmt.Sprintf("continuing research, step %d of %d", currentStepIndex+1, len(plan.Steps))
	}
	return true, reason
}
