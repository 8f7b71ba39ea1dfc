// Package ingestion turns raw text into embedded, section-tagged
// documents in the repository.
//
// Section detection is heuristic: short capitalized lines delimit
// sections, with paragraph grouping as a fallback. Chunks inherit their
// section title as metadata so retrieval can filter by section.
package ingestion
