// Package tavily implements websearch.Searcher against the Tavily
// search API.
package tavily
