package llms

// Response is a single response from a language model.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Turn is one entry of the conversation history handed to a language model.
type Turn struct {
	Role TurnRole

	// Content is the prompt for a user turn and the generated message for an
	// assistant turn.
	Content string
	// ToolCalls holds the tool invocations the assistant made during the
	// turn, including their responses.
	ToolCalls []ToolCall
}

// ToolCall is one tool invocation requested by the model, together with the
// response produced by executing it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
	Response  string
}

// TurnRole describes who a conversation turn is from.
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)
