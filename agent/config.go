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

// RunConfig holds the per-run tuning knobs of the research engine.
// Each run gets its own copy, so option overrides never leak across runs.
type RunConfig struct {
	// TopKRetrieval is the number of documents each retrieval returns.
	TopKRetrieval int

	// TopNRerank is the number of documents kept after reranking.
	TopNRerank int

	// MaxSteps bounds the number of research steps executed, regardless
	// of plan length or policy advice.
	MaxSteps int

	// RecursionLimit bounds the total number of state transitions.
	RecursionLimit int

	// WebSearchResults is the number of results requested from the web
	// search backend.
	WebSearchResults int

	// MinSimilarity is the similarity floor for vector retrieval.
	// Zero keeps all of the top-k.
	MinSimilarity float32
}

// DefaultRunConfig returns the standard run configuration.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		TopKRetrieval:    10,
		TopNRerank:       3,
		MaxSteps:         7,
		RecursionLimit:   200,
		WebSearchResults: 5,
		MinSimilarity:    0,
	}
}

// RunOption overrides a RunConfig value for a single run.
type RunOption func(*RunConfig)

// WithTopK sets the number of documents each retrieval returns.
func WithTopK(k int) RunOption {
	return func(c *RunConfig) {
		if k > 0 {
			c.TopKRetrieval = k
		}
	}
}

// WithTopN sets the number of documents kept after reranking.
func WithTopN(n int) RunOption {
	return func(c *RunConfig) {
		if n > 0 {
			c.TopNRerank = n
		}
	}
}

// WithMaxSteps bounds the number of research steps. Zero is honored and
// stops the run before its first retrieval.
func WithMaxSteps(n int) RunOption {
	return func(c *RunConfig) {
		if n >= 0 {
			c.MaxSteps = n
		}
	}
}

// WithRecursionLimit bounds the total number of state transitions.
func WithRecursionLimit(n int) RunOption {
	return func(c *RunConfig) {
		if n > 0 {
			c.RecursionLimit = n
		}
	}
}

// WithWebSearchResults sets the number of web search results requested.
func WithWebSearchResults(n int) RunOption {
	return func(c *RunConfig) {
		if n > 0 {
			c.WebSearchResults = n
		}
	}
}
