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


package core

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//
// NOT validated (populated later or optional):
//   - Vector (can be empty until the embedding pass runs)
//   - Section, Title, Score, Metadata (optional)
//   - ID (0 is valid for transient web results)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	return nil
}

// ValidateStep validates a plan Step according to domain rules.
//
// Validation rules:
//   - SubQuestion must not be empty
//   - Tool must be a known tool type
func ValidateStep(step *Step) error {
	if step == nil {
		return fmt.Errorf("%w: step is nil", ErrInvalidStep)
	}

	if step.SubQuestion == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStep, ErrEmptySubQuestion)
	}

	if err := ValidateToolType(step.Tool); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStep, err)
	}

	return nil
}

// ValidatePlan validates a Plan according to domain rules.
//
// Validation rules:
//   - Steps must not be empty
//   - Every step must be valid
func ValidatePlan(plan *Plan) error {
	if plan == nil {
		return fmt.Errorf("%w: plan is nil", ErrInvalidPlan)
	}

	if len(plan.Steps) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, ErrEmptyPlan)
	}

	for i := range plan.Steps {
		if err := ValidateStep(&plan.Steps[i]); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidPlan, i, err)
		}
	}

	return nil
}

// ValidateToolType validates that a ToolType has a valid value.
func ValidateToolType(tool ToolType) error {
	if tool != ToolSearchDocuments && tool != ToolSearchWeb {
		return fmt.Errorf("%w: value %d", ErrInvalidTool, tool)
	}
	return nil
}

// ValidateRetrievalStrategy validates that a RetrievalStrategy has a valid value.
func ValidateRetrievalStrategy(strategy RetrievalStrategy) error {
	if strategy != StrategyVector && strategy != StrategyKeyword && strategy != StrategyHybrid {
		return fmt.Errorf("%w: value %d", ErrInvalidStrategy, strategy)
	}
	return nil
}

// ValidatePolicyAction validates that a PolicyAction has a valid value.
func ValidatePolicyAction(action PolicyAction) error {
	if action != PolicyContinue && action != PolicyStop {
		return fmt.Errorf("%w: value %d", ErrInvalidPolicyAction, action)
	}
	return nil
}
