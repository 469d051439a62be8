package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/foliovoice/folio-core/core/websearch"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	url = "https://api.exa.ai/search"

	defaultNumResults   = 3
	defaultSnippetChars = 500
)

// Client searches the web through the Exa API.
type Client struct {
	apiKey     string
	httpClient *http.Client

	numResults   int
	snippetChars int
}

type ClientOption func(*Client)

// WithNumResults overrides how many results a search returns.
func WithNumResults(numResults int) ClientOption {
	return func(c *Client) {
		c.numResults = numResults
	}
}

// NewClient creates a search client. An empty apiKey falls back to the
// EXA_API_KEY environment variable.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("EXA_API_KEY")
	}

	client := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
		numResults:   defaultNumResults,
		snippetChars: defaultSnippetChars,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

type requestBody struct {
	Query      string          `json:"query"`
	NumResults int             `json:"numResults"`
	Contents   requestContents `json:"contents"`
}

type requestContents struct {
	Text requestText `json:"text"`
}

type requestText struct {
	MaxCharacters int `json:"maxCharacters"`
}

type responseBody struct {
	Results []responseResult `json:"results"`
}

type responseResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

func (c *Client) Search(ctx context.Context, query string) ([]websearch.Result, error) {
	ctx, span := tracer.Start(ctx, "search web")
	defer span.End()
	span.SetAttributes(attribute.String("request.query", query))

	requestBodyBytes, err := json.Marshal(requestBody{
		Query:      query,
		NumResults: c.numResults,
		Contents:   requestContents{Text: requestText{MaxCharacters: c.snippetChars}},
	})
	if err != nil {
		err = fmt.Errorf("error marshalling JSON: %w", err)
		span.RecordError(err)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		err = fmt.Errorf("error creating HTTP request: %w", err)
		span.RecordError(err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("error sending request: %w", err)
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		if errorBody, err := io.ReadAll(resp.Body); err == nil {
			span.SetAttributes(attribute.String("response.error", string(errorBody)))
		}

		err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
		span.RecordError(err)
		return nil, err
	}

	var body responseBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		err = fmt.Errorf("error unmarshalling JSON: %w", err)
		span.RecordError(err)
		return nil, err
	}

	results := []websearch.Result{}
	for _, result := range body.Results {
		text := result.Text
		if len(text) > c.snippetChars {
			text = text[:c.snippetChars]
		}
		results = append(results, websearch.Result{
			Title: result.Title,
			URL:   result.URL,
			Text:  text,
		})
	}
	span.SetAttributes(attribute.Int("response.results", len(results)))
	logger.InfoContext(ctx, "web search completed", "query", query, "results", len(results))

	return results, nil
}
