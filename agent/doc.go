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

// Package agent implements the research engine: a state machine that
// plans sub-questions, retrieves evidence from the indexed corpus and
// the web, reflects on findings, and synthesizes an answer.
//
// A run proceeds plan → choose tool → retrieve → rerank → compress →
// reflect, looping until the termination policy stops it, then
// finalizes. Structural bounds (plan length, step budget, transition
// ceiling) always override the advisory policy model.
package agent
