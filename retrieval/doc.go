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

// Package retrieval provides lexical, vector, and hybrid search over the
// document repository.
//
// Lexical search uses an in-memory Okapi BM25 index rebuilt per query.
// Vector search delegates to the repository's similarity scan. Hybrid
// search runs both and merges the ranked lists with reciprocal rank
// fusion.
package retrieval
