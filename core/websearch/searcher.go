// Package websearch exposes live web search to the assistant as a callable
// tool.
package websearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/foliovoice/folio-core/core/llms"
)

// Result is a single web search hit.
type Result struct {
	Title string
	URL   string
	Text  string
}

// Searcher performs a web search and returns snippet-bearing results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// FormatResults renders results into the numbered plain-text block handed
// back to the model.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No results found."
	}

	formatted := []string{}
	for i, result := range results {
		formatted = append(formatted, fmt.Sprintf("%d. %s\n   URL: %s\n   %s", i+1, result.Title, result.URL, result.Text))
	}

	return strings.Join(formatted, "\n\n")
}

type searchArguments struct {
	Query string `json:"query" jsonschema:"description=The search query"`
}

// Tool wraps a searcher into a tool the model can invoke. A nil searcher
// still produces a functional tool that reports search as unavailable, so
// the model learns the capability exists but cannot be used right now.
func Tool(searcher Searcher) llms.Tool {
	return llms.NewTool("search_web",
		"Search the web for information. Only use this when the user asks about something not in the document, or explicitly asks you to search online.",
		map[string]llms.ParameterBase{
			"query": {Type: "string", Description: "The search query"},
		},
		func(arguments searchArguments) (string, error) {
			if searcher == nil {
				return "Search error: Web search is not configured", nil
			}

			results, err := searcher.Search(context.Background(), arguments.Query)
			if err != nil {
				return fmt.Sprintf("Search error: %s", err), nil
			}

			return FormatResults(results), nil
		},
	).WithRequired("query")
}
