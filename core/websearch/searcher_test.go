package websearch

import (
	"context"
	"errors"
	"testing"
)

type stubSearcher struct {
	results []Result
	err     error
}

func (s stubSearcher) Search(context.Context, string) ([]Result, error) {
	return s.results, s.err
}

func TestFormatResultsNumbersEntries(t *testing.T) {
	formatted := FormatResults([]Result{
		{Title: "Go iterators", URL: "https://go.dev/blog/range-functions", Text: "Range over functions."},
		{Title: "Go 1.23 release notes", URL: "https://go.dev/doc/go1.23", Text: "Iterator support."},
	})

	expected := "1. Go iterators\n   URL: https://go.dev/blog/range-functions\n   Range over functions.\n\n" +
		"2. Go 1.23 release notes\n   URL: https://go.dev/doc/go1.23\n   Iterator support."
	if formatted != expected {
		t.Fatalf("expected %q, got %q", expected, formatted)
	}
}

func TestFormatResultsEmpty(t *testing.T) {
	if formatted := FormatResults(nil); formatted != "No results found." {
		t.Fatalf("expected %q, got %q", "No results found.", formatted)
	}
}

func TestToolFormatsResults(t *testing.T) {
	tool := Tool(stubSearcher{results: []Result{
		{Title: "Go iterators", URL: "https://go.dev/blog/range-functions", Text: "Range over functions."},
	}})

	response, err := tool.Execute(`{"query":"go iterators"}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	expected := "1. Go iterators\n   URL: https://go.dev/blog/range-functions\n   Range over functions."
	if response != expected {
		t.Fatalf("expected %q, got %q", expected, response)
	}
}

func TestToolReportsSearchErrors(t *testing.T) {
	tool := Tool(stubSearcher{err: errors.New("connection refused")})

	response, err := tool.Execute(`{"query":"anything"}`)
	if err != nil {
		t.Fatalf("expected the error folded into the response, got %v", err)
	}
	if response != "Search error: connection refused" {
		t.Fatalf("expected %q, got %q", "Search error: connection refused", response)
	}
}

func TestToolWithoutSearcher(t *testing.T) {
	tool := Tool(nil)

	response, err := tool.Execute(`{"query":"anything"}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response != "Search error: Web search is not configured" {
		t.Fatalf("expected %q, got %q", "Search error: Web search is not configured", response)
	}
}
