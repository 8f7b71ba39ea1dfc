// Package websearch defines the interface for external web search
// providers and the conversion of their results into documents.
package websearch
