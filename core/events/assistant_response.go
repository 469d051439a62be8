package events

const (
	// KindGenerationStarted identifies the start of response generation.
	KindGenerationStarted Kind = "assistant_response.started"
	// KindGenerationChunk identifies streamed assistant response text.
	KindGenerationChunk Kind = "assistant_response.chunk"
	// KindGenerationEnded identifies response generation completion.
	KindGenerationEnded Kind = "assistant_response.ended"
)

// GenerationStarted marks the start of a new assistant generation turn.
type GenerationStarted struct{ Base }

// NewGenerationStarted creates a generation started event.
func NewGenerationStarted() GenerationStarted {
	return GenerationStarted{Base: NewBase(KindGenerationStarted)}
}

// GenerationChunk carries a streamed assistant response text chunk.
type GenerationChunk struct {
	Base
	Text string
}

// NewGenerationChunk creates a generation text chunk event.
func NewGenerationChunk(text string) GenerationChunk {
	return GenerationChunk{Base: NewBase(KindGenerationChunk), Text: text}
}

// GenerationEnded marks completion of the assistant generation turn.
type GenerationEnded struct{ Base }

// NewGenerationEnded creates a generation ended event.
func NewGenerationEnded() GenerationEnded {
	return GenerationEnded{Base: NewBase(KindGenerationEnded)}
}
