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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidPlan indicates a Plan failed validation.
	ErrInvalidPlan = errors.New("invalid plan")

	// ErrInvalidStep indicates a plan Step failed validation.
	ErrInvalidStep = errors.New("invalid step")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptySubQuestion indicates a step has no sub-question.
	ErrEmptySubQuestion = errors.New("sub-question cannot be empty")

	// ErrEmptyPlan indicates a plan has no steps.
	ErrEmptyPlan = errors.New("plan must contain at least one step")

	// ErrInvalidTool indicates an unrecognized ToolType value.
	ErrInvalidTool = errors.New("invalid tool type")

	// ErrInvalidStrategy indicates an unrecognized RetrievalStrategy value.
	ErrInvalidStrategy = errors.New("invalid retrieval strategy")

	// ErrInvalidPolicyAction indicates an unrecognized PolicyAction value.
	ErrInvalidPolicyAction = errors.New("invalid policy action")
)
