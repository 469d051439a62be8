package llms

// GenerateOptions collects the per-call configuration for a generation
// request.
type GenerateOptions struct {
	Instructions string
	Turns        []Turn
	Tools        []Tool
}

type GenerateOption func(*GenerateOptions)

// WithSystemPrompt sets the system instructions for the request. Repeating
// this option overwrites the previous instructions.
func WithSystemPrompt(instructions string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Instructions = instructions
	}
}

// WithTurns sets the conversation history for the request.
func WithTurns(turns ...Turn) GenerateOption {
	return func(o *GenerateOptions) {
		o.Turns = append([]Turn(nil), turns...)
	}
}

// WithTools exposes the given tools to the model for this request.
func WithTools(tools ...Tool) GenerateOption {
	return func(o *GenerateOptions) {
		o.Tools = append([]Tool(nil), tools...)
	}
}
