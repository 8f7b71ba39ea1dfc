// Package mock provides a deterministic test double for the websearch
// Searcher interface.
package mock
