package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Client generates responses through the Gemini API. The underlying API
// client is shared with file management, so one Client serves both
// generation and document uploads.
type Client struct {
	genai *genai.Client
	model string

	attachment *Attachment
}

type ClientOption func(*Client)

func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	client := &Client{
		genai: genaiClient,
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Genai exposes the underlying API client for the Files API.
func (c *Client) Genai() *genai.Client {
	return c.genai
}

// SetAttachment attaches a previously uploaded file to subsequent prompts.
// Passing nil detaches.
func (c *Client) SetAttachment(attachment *Attachment) {
	c.attachment = attachment
}
