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

import "errors"

var (
	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrNoContext is returned when a run reaches finalization without any
	// research findings to synthesize from.
	ErrNoContext = errors.New("no context available")

	// ErrPlanningFailed is returned when the planner cannot produce a plan.
	ErrPlanningFailed = errors.New("planning failed")

	// ErrSynthesisFailed is returned when the final answer cannot be produced.
	ErrSynthesisFailed = errors.New("synthesis failed")

	// ErrRecursionLimit is returned when a run exceeds the transition ceiling
	// and cannot be recovered.
	ErrRecursionLimit = errors.New("recursion limit exceeded")
)
