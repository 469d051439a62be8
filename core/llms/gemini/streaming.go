package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/foliovoice/folio-core/core/llms"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// PromptOption configures provider-specific behaviour of a single prompt.
type PromptOption func(*promptOptions)

type promptOptions struct {
	attachment *Attachment
}

// WithAttachment includes the referenced uploaded file with the first user
// content of the request.
func WithAttachment(attachment Attachment) PromptOption {
	return func(o *promptOptions) {
		o.attachment = &attachment
	}
}

// PromptWithStream prepares a streaming generation request. The request is
// not sent until the returned stream's chunks are consumed.
func (c *Client) PromptWithStream(_ context.Context, prompt *string, opts ...llms.GenerateOption) llms.Stream {
	providerOpts := []PromptOption{}
	if c.attachment != nil {
		providerOpts = append(providerOpts, WithAttachment(*c.attachment))
	}

	return newStream(c.genai, c.model, prompt, providerOpts, opts...)
}

func newStream(
	client *genai.Client,
	model string,
	prompt *string,
	providerOpts []PromptOption,
	opts ...llms.GenerateOption,
) *Stream {
	options := llms.GenerateOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	provider := promptOptions{}
	for _, opt := range providerOpts {
		opt(&provider)
	}

	contents := toContents(options.Turns, prompt, provider.attachment)

	config := &genai.GenerateContentConfig{
		Tools: toTools(options.Tools),
	}
	if options.Instructions != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: options.Instructions}},
		}
	}

	return &Stream{
		client:   client,
		model:    model,
		contents: contents,
		config:   config,
	}
}

type Stream struct {
	client *genai.Client

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (s *Stream) Chunks(ctx context.Context) func(func(llms.StreamChunk, error) bool) {
	requestToFirstTokenTime := time.Time{}
	setRequestToFirstTokenTime := func(span trace.Span) {
		if requestToFirstTokenTime.IsZero() {
			return
		}
		span.SetAttributes(attribute.Float64("response.request_to_first_token_time", time.Since(requestToFirstTokenTime).Seconds()))
		span.AddEvent("received first chunk")
		requestToFirstTokenTime = time.Time{}
	}

	return func(yield func(llms.StreamChunk, error) bool) {
		ctx, span := tracer.Start(ctx, "prompt llm stream")
		defer span.End()
		span.SetAttributes(attribute.String("request.model", s.model))
		var toolNames []string
		if s.config != nil {
			for _, tool := range s.config.Tools {
				for _, declaration := range tool.FunctionDeclarations {
					toolNames = append(toolNames, declaration.Name)
				}
			}
		}
		span.SetAttributes(attribute.StringSlice("request.available_tools", toolNames))

		calledTools := []string{}
		defer func() {
			span.SetAttributes(attribute.StringSlice("response.tool_calls", calledTools))
		}()

		requestToFirstTokenTime = time.Now()
		span.AddEvent("request started")
		for response, err := range s.client.Models.GenerateContentStream(ctx, s.model, s.contents, s.config) {
			setRequestToFirstTokenTime(span)
			if err != nil {
				err = fmt.Errorf("error streaming generation: %w", err)
				span.RecordError(err)
				yield(nil, err)
				return
			}

			if len(response.Candidates) == 0 {
				continue
			}
			candidate := response.Candidates[0]

			var finishReason *string
			if candidate.FinishReason != "" {
				reason := string(candidate.FinishReason)
				finishReason = &reason
			}

			if candidate.Content == nil {
				continue
			}

			for _, part := range candidate.Content.Parts {
				if call := part.FunctionCall; call != nil {
					arguments, err := json.Marshal(call.Args)
					if err != nil {
						err = fmt.Errorf("error marshalling tool call arguments: %w", err)
						span.RecordError(err)
						if !yield(nil, err) {
							return
						}
						continue
					}

					id := call.ID
					if id == "" {
						id = uuid.NewString()
					}

					calledTools = append(calledTools, call.Name)
					if !yield(StreamToolCallChunk{
						finishReason: finishReason,
						toolCall: llms.ToolCall{
							ID:        id,
							Name:      call.Name,
							Arguments: string(arguments),
						},
					}, nil) {
						return
					}
				}

				if part.Text != "" {
					if !yield(StreamContentChunk{
						finishReason: finishReason,
						content:      part.Text,
					}, nil) {
						return
					}
				}
			}

			if usage := response.UsageMetadata; usage != nil {
				span.SetAttributes(attribute.Int("usage.input", int(usage.PromptTokenCount)))
				span.SetAttributes(attribute.Int("usage.output", int(usage.CandidatesTokenCount)))
				span.SetAttributes(attribute.Int("usage.total", int(usage.TotalTokenCount)))
			}
		}
	}
}

type StreamContentChunk struct {
	finishReason *string
	content      string
}

func (c StreamContentChunk) FinishReason() *string { return c.finishReason }

func (c StreamContentChunk) Content() string { return c.content }

type StreamToolCallChunk struct {
	finishReason *string
	toolCall     llms.ToolCall
}

func (c StreamToolCallChunk) FinishReason() *string { return c.finishReason }

func (c StreamToolCallChunk) ToolCall() llms.ToolCall { return c.toolCall }
