package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/foliovoice/folio-core/core/events"
	"github.com/foliovoice/folio-core/core/llms"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type llm struct {
	// client is the configured streaming LLM implementation.
	client LLMWithStream
	// tools stores the effective tool list exposed to model calls.
	tools []llms.Tool
	// instructions is the system prompt sent with every model call.
	instructions string

	emitEvent emitter
}

func newLLM() llm {
	return llm{emitEvent: noopEmitter}
}

func (runtime *llm) set(client LLMWithStream) {
	if runtime == nil {
		return
	}

	runtime.client = client
}

func (runtime *llm) setTools(tools ...llms.Tool) {
	if runtime == nil {
		return
	}

	runtime.tools = append([]llms.Tool(nil), tools...)
}

func (runtime *llm) appendTools(tools ...llms.Tool) {
	if runtime == nil || len(tools) == 0 {
		return
	}

	runtime.tools = append(runtime.tools, tools...)
}

func (runtime *llm) setInstructions(instructions string) {
	if runtime == nil {
		return
	}

	runtime.instructions = instructions
}

func (runtime *llm) setEventEmitter(emitEvent emitter) {
	if runtime == nil {
		return
	}

	if emitEvent != nil {
		runtime.emitEvent = emitEvent
	} else {
		runtime.emitEvent = noopEmitter
	}
}

func (runtime *llm) availableTools() []llms.Tool {
	if runtime == nil {
		return nil
	}

	tools := make([]llms.Tool, len(runtime.tools))
	copy(tools, runtime.tools)
	return tools
}

// generate runs one assistant response, looping through tool calls until
// the model produces a plain message. Streamed content is delivered through
// onChunk in arrival order.
func (runtime *llm) generate(
	ctx context.Context,
	prompt string,
	conversation []llms.Turn,
	onChunk func(string),
	cancelled func() bool,
) (*llms.Response, error) {
	if runtime == nil || runtime.client == nil {
		return nil, nil
	}

	span := trace.SpanFromContext(ctx)

	turns := append(append([]llms.Turn(nil), conversation...),
		llms.Turn{Role: llms.TurnRoleUser, Content: prompt})
	assistantTurn := llms.Turn{Role: llms.TurnRoleAssistant}
	for {
		stream := runtime.client.PromptWithStream(ctx, nil,
			llms.WithSystemPrompt(runtime.instructions),
			llms.WithTurns(append(turns, assistantTurn)...),
			llms.WithTools(runtime.tools...),
		)

		var message strings.Builder
		toolCalls := []llms.ToolCall{}
		for chunk, err := range stream.Chunks(ctx) {
			if err != nil {
				err = fmt.Errorf("failed to stream llm response: %w", err)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}

			if cancelled != nil && cancelled() {
				return nil, nil
			}

			switch chunk := chunk.(type) {
			case llms.StreamContentChunk:
				message.WriteString(chunk.Content())
				if onChunk != nil {
					onChunk(chunk.Content())
				}

			case llms.StreamToolCallChunk:
				toolCalls = append(toolCalls, chunk.ToolCall())
			}
		}

		for _, toolCall := range toolCalls {
			response, err := runtime.callTool(ctx, toolCall)
			if err != nil {
				err = fmt.Errorf("failed to call tool: %w", err)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			toolCall.Response = response
			assistantTurn.ToolCalls = append(assistantTurn.ToolCalls, toolCall)
		}

		if len(toolCalls) == 0 {
			return &llms.Response{
				Content:   message.String(),
				ToolCalls: assistantTurn.ToolCalls,
			}, nil
		}
	}
}

func (runtime *llm) callTool(ctx context.Context, toolCall llms.ToolCall) (string, error) {
	ctx, span := tracer.Start(ctx, "execute tool")
	defer span.End()
	span.SetAttributes(attribute.String("tool.name", toolCall.Name))

	runtime.emitEvent(events.NewToolCallStarted(toolCall.ID, toolCall.Name, toolCall.Arguments))
	for _, tool := range runtime.tools {
		if tool.Name != toolCall.Name {
			continue
		}

		response, err := tool.Execute(toolCall.Arguments)
		if err != nil {
			err = fmt.Errorf("failed to execute tool %q: %w", toolCall.Name, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			runtime.emitEvent(events.NewToolCallFailed(toolCall.ID, toolCall.Name, err.Error()))
			return "", err
		}
		runtime.emitEvent(events.NewToolCallCompleted(toolCall.ID, toolCall.Name, response))
		return response, nil
	}

	err := fmt.Errorf("tool not found: %s", toolCall.Name)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	runtime.emitEvent(events.NewToolCallFailed(toolCall.ID, toolCall.Name, err.Error()))
	return "", err
}
