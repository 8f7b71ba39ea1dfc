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

package ingestion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/researchit/core"
	"github.com/tmc/langchaingo/textsplitter"
)

const maxSectionTitleLen = 200

// section is a titled span of the source text.
type section struct {
	title   string
	content string
}

// looksLikeHeader applies the header heuristic: a short line starting
// with an uppercase letter or digit and containing at least one
// uppercase letter.
func looksLikeHeader(line string) bool {
	if line == "" || len(line) >= 100 {
		return false
	}

	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) && !unicode.IsDigit(first) {
		return false
	}

	for _, c := range line {
		if unicode.IsLetter(c) && unicode.IsUpper(c) {
			return true
		}
	}
	return false
}

// headerHasBody reports whether any of the lines following a candidate
// header reads like body text rather than another header.
func headerHasBody(lines []string, headerIdx int) bool {
	for j := headerIdx + 1; j < len(lines) && j < headerIdx+5; j++ {
		next := strings.TrimSpace(lines[j])
		if next == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(next)
		if !unicode.IsUpper(first) || len(next) > 50 {
			return true
		}
	}
	return false
}

// detectSections splits raw text into titled sections. Header-looking
// lines delimit sections; text without headers is grouped by paragraph
// under "Document Content"; text that yields nothing becomes a single
// "Full Document" section.
func detectSections(text string) []section {
	lines := strings.Split(text, "\n")

	type headerPos struct {
		line  int
		title string
	}
	var headers []headerPos

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if looksLikeHeader(stripped) && (headerHasBody(lines, i) || i == 0) {
			headers = append(headers, headerPos{line: i, title: stripped})
		}
	}

	var sections []section
	if len(headers) > 0 {
		for idx, h := range headers {
			end := len(lines)
			if idx+1 < len(headers) {
				end = headers[idx+1].line
			}
			content := strings.TrimSpace(strings.Join(lines[h.line+1:end], "\n"))
			if content != "" || idx == 0 {
				sections = append(sections, section{title: h.title, content: content})
			}
		}
	} else {
		// No headers: group paragraphs, promoting short leading
		// paragraphs to section titles
		title := "Document Content"
		var content []string
		for _, para := range strings.Split(text, "\n\n") {
			stripped := strings.TrimSpace(para)
			if stripped == "" {
				continue
			}
			first, _ := utf8.DecodeRuneInString(stripped)
			if len(stripped) < 100 && unicode.IsUpper(first) {
				if len(content) > 0 {
					sections = append(sections, section{title: title, content: strings.Join(content, "\n\n")})
				}
				title = stripped
				content = nil
			} else {
				content = append(content, stripped)
			}
		}
		if len(content) > 0 {
			sections = append(sections, section{title: title, content: strings.Join(content, "\n\n")})
		}
	}

	if len(sections) == 0 {
		sections = []section{{title: "Full Document", content: text}}
	}
	return sections
}

// cleanTitle flattens and bounds a section title for use as metadata.
func cleanTitle(title string) string {
	title = strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	if len(title) > maxSectionTitleLen {
		title = title[:maxSectionTitleLen]
	}
	return title
}

// Chunk splits raw text into section-tagged documents. Each chunk keeps
// its section title and source file in the document metadata; IDs are
// left zero so storage derives them from content.
func Chunk(text, source string, chunkSize, chunkOverlap int) ([]*core.Document, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	var docs []*core.Document
	for _, sec := range detectSections(text) {
		content := strings.TrimSpace(sec.content)
		if content == "" {
			continue
		}

		title := cleanTitle(sec.title)
		chunks, err := splitter.SplitText(content)
		if err != nil {
			return nil, err
		}
		if len(chunks) == 0 {
			chunks = []string{content}
		}

		for _, chunk := range chunks {
			docs = append(docs, &core.Document{
				Content: chunk,
				Source:  source,
				Section: title,
				Title:   title,
				Metadata: map[string]string{
					"source_doc": source,
				},
			})
		}
	}

	return docs, nil
}
