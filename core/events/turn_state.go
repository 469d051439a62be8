package events

const (
	// KindTurnStarted identifies the start of a turn.
	KindTurnStarted Kind = "turn_state.started"
	// KindTurnCompleted identifies successful turn completion.
	KindTurnCompleted Kind = "turn_state.completed"
	// KindTurnFailed identifies turn failure.
	KindTurnFailed Kind = "turn_state.failed"
	// KindRunRequested identifies a request for an unprompted assistant turn.
	KindRunRequested Kind = "session.run_requested"
)

// TurnStarted marks the start of a turn.
type TurnStarted struct {
	Base
	TurnID string
}

// NewTurnStarted creates a turn started event.
func NewTurnStarted(turnID string) TurnStarted {
	return TurnStarted{Base: NewBase(KindTurnStarted), TurnID: turnID}
}

// TurnCompleted marks successful completion of a turn.
type TurnCompleted struct {
	Base
	TurnID string
}

// NewTurnCompleted creates a turn completed event.
func NewTurnCompleted(turnID string) TurnCompleted {
	return TurnCompleted{Base: NewBase(KindTurnCompleted), TurnID: turnID}
}

// TurnFailed marks a failed turn.
type TurnFailed struct {
	Base
	TurnID string
	Error  string
}

// NewTurnFailed creates a turn failed event.
func NewTurnFailed(turnID, err string) TurnFailed {
	return TurnFailed{Base: NewBase(KindTurnFailed), TurnID: turnID, Error: err}
}

// RunRequested asks the assistant to generate a turn without a user
// utterance, e.g. the initial greeting after a client connects.
type RunRequested struct {
	Base
	Prompt string
}

// NewRunRequested creates a run requested event.
func NewRunRequested(prompt string) RunRequested {
	return RunRequested{Base: NewBase(KindRunRequested), Prompt: prompt}
}
