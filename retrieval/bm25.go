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

package retrieval

import (
	"math"
	"slices"
	"strings"
)

// Okapi BM25 parameters.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// BM25 is an Okapi BM25 index over a fixed corpus of texts.
// Tokenization is whitespace splitting, no stemming or stopwords.
type BM25 struct {
	termFreqs []map[string]int
	docFreq   map[string]int
	docLens   []int
	avgDocLen float64
}

// NewBM25 builds an index over the given texts. An empty corpus yields
// an index whose Scores always return nothing.
func NewBM25(texts []string) *BM25 {
	idx := &BM25{
		termFreqs: make([]map[string]int, len(texts)),
		docFreq:   make(map[string]int),
		docLens:   make([]int, len(texts)),
	}

	totalLen := 0
	for i, text := range texts {
		tokens := tokenize(text)
		idx.docLens[i] = len(tokens)
		totalLen += len(tokens)

		freqs := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freqs[tok]++
		}
		idx.termFreqs[i] = freqs

		for term := range freqs {
			idx.docFreq[term]++
		}
	}

	if len(texts) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(texts))
	}

	return idx
}

// Len returns the corpus size.
func (idx *BM25) Len() int {
	return len(idx.termFreqs)
}

// Scores returns a BM25 score for every corpus document against the query.
func (idx *BM25) Scores(query string) []float64 {
	scores := make([]float64, len(idx.termFreqs))
	if len(idx.termFreqs) == 0 {
		return scores
	}

	n := float64(len(idx.termFreqs))
	for _, term := range tokenize(query) {
		df, ok := idx.docFreq[term]
		if !ok {
			continue
		}

		idf := math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
		for i, freqs := range idx.termFreqs {
			tf := float64(freqs[term])
			if tf == 0 {
				continue
			}
			norm := 1 - bm25B + bm25B*float64(idx.docLens[i])/idx.avgDocLen
			scores[i] += idf * (tf * (bm25K1 + 1)) / (tf + bm25K1*norm)
		}
	}

	return scores
}

// TopN returns the indices of the n highest-scoring documents for the
// query, best first. Ties keep corpus order.
func (idx *BM25) TopN(query string, n int) []int {
	scores := idx.Scores(query)

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}

	// Stable so equal scores keep corpus order
	slices.SortStableFunc(order, func(a, b int) int {
		if scores[a] > scores[b] {
			return -1
		}
		if scores[a] < scores[b] {
			return 1
		}
		return 0
	})

	if n > len(order) {
		n = len(order)
	}
	return order[:n]
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
