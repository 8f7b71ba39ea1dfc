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


// Package ai provides abstractions for the AI capabilities used by the
// research engine.
//
// This package defines interfaces for the reasoning capability (one typed
// method per agent role: planner, query rewriter, retrieval strategist,
// reflector, distiller, policy, final synthesizer) and for text embedding.
// It follows the dependency inversion principle: the orchestrator and
// retrieval layers depend on these abstractions rather than on concrete
// model clients.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider) return INTERFACE types to
// enforce abstraction and prevent accidental coupling to concrete
// implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockReasoner, mock.NewMockEmbedder)
// return CONCRETE types to enable behavior injection via function fields
// and call-count assertions.
package ai
