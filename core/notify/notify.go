// Package notify defines the out-of-band notification contract between a
// voice session and its connected client: status updates, transcript
// snapshots, and log lines pushed over a fire-and-forget channel separate
// from the primary pipeline.
package notify

import "time"

// Status is the coarse processing state shown to the client.
type Status string

const (
	// StatusConnected is sent once when a client attaches to a session.
	StatusConnected Status = "connected"
	// StatusListening indicates the user is speaking and interim
	// transcription is in progress.
	StatusListening Status = "listening"
	// StatusSTT indicates a final transcription was just produced.
	StatusSTT Status = "stt"
	// StatusLLM indicates the language model is generating a response.
	StatusLLM Status = "llm"
	// StatusTTS indicates synthesized audio is playing.
	StatusTTS Status = "tts"
	// StatusIdle indicates no active processing.
	StatusIdle Status = "idle"
)

// Role identifies which side of the conversation a transcript belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Notification is an outward message pushed to the connected client.
type Notification interface {
	notification()
}

// StatusNotification reports a processing-state change. Text optionally
// carries the content that triggered the change.
type StatusNotification struct {
	Type   string `json:"type"`
	Status Status `json:"status"`
	Text   string `json:"text,omitempty"`
}

func (StatusNotification) notification() {}

// NewStatus creates a status notification without accompanying text.
func NewStatus(status Status) StatusNotification {
	return StatusNotification{Type: "status", Status: status}
}

// NewStatusText creates a status notification with accompanying text.
func NewStatusText(status Status, text string) StatusNotification {
	return StatusNotification{Type: "status", Status: status, Text: text}
}

// TranscriptNotification carries one snapshot of a logical message. The
// client renders the latest snapshot for a given MessageID; it never
// concatenates snapshots.
type TranscriptNotification struct {
	Type  string `json:"type"`
	Role  Role   `json:"role"`
	Text  string `json:"text"`
	Final bool   `json:"final"`
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
	// MessageID correlates streaming snapshots with the logical message they
	// belong to. It is monotonically increasing per role within a session.
	MessageID int `json:"messageId"`
}

func (TranscriptNotification) notification() {}

// NewTranscript creates a transcript snapshot notification stamped with the
// current time.
func NewTranscript(role Role, text string, final bool, messageID int) TranscriptNotification {
	return TranscriptNotification{
		Type:      "transcript",
		Role:      role,
		Text:      text,
		Final:     final,
		Timestamp: time.Now().UnixMilli(),
		MessageID: messageID,
	}
}

// LogNotification carries a free-text progress line for the client's debug
// panel.
type LogNotification struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (LogNotification) notification() {}

// NewLog creates a log notification.
func NewLog(text string) LogNotification {
	return LogNotification{Type: "log", Text: text}
}

// Sink is the session's outbound notification channel. Send is push-only
// and fire-and-forget: implementations must not block on client
// acknowledgment, and callers treat errors as advisory.
type Sink interface {
	Send(notification Notification) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(notification Notification) error

func (f SinkFunc) Send(notification Notification) error { return f(notification) }
