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

package websearch

import (
	"context"
	"time"

	"github.com/poiesic/researchit/core"
)

// Result is a single hit returned by a web search provider.
type Result struct {
	Title   string
	URL     string
	Content string
	Score   float32
}

// Searcher queries an external web search provider.
type Searcher interface {
	// Search runs a query and returns up to maxResults hits, best first.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// ToDocuments converts web results into documents. The URL becomes the
// source and the section is fixed to "Web" so section filters never match
// indexed corpus sections.
func ToDocuments(results []Result) []*core.Document {
	now := time.Now()
	docs := make([]*core.Document, 0, len(results))
	for _, r := range results {
		content := r.Content
		if content == "" {
			continue
		}
		docs = append(docs, &core.Document{
			Id:         core.IDFromContent(r.URL + "\n" + content),
			Content:    content,
			Source:     r.URL,
			Section:    "Web",
			Title:      r.Title,
			Score:      r.Score,
			InsertedAt: now,
			UpdatedAt:  now,
		})
	}
	return docs
}
