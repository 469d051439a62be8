package llms

import "context"

// Stream is a lazily-consumed sequence of generation chunks.
type Stream interface {
	Chunks(context.Context) func(func(StreamChunk, error) bool)
}

// StreamChunk is a single element of a generation stream.
type StreamChunk interface {
	FinishReason() *string
}

// StreamContentChunk carries streamed response text.
type StreamContentChunk interface {
	StreamChunk
	Content() string
}

// StreamToolCallChunk carries a tool invocation requested by the model.
type StreamToolCallChunk interface {
	StreamChunk
	ToolCall() ToolCall
}
