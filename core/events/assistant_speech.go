package events

const (
	// KindPlaybackChunkRequested identifies text handed to the synthesizer.
	KindPlaybackChunkRequested Kind = "assistant_speech.chunk_requested"
	// KindPlaybackStarted identifies the start of synthesized playback.
	KindPlaybackStarted Kind = "assistant_speech.started"
	// KindPlaybackStopped identifies the end of synthesized playback.
	KindPlaybackStopped Kind = "assistant_speech.stopped"
	// KindSpeechFrame identifies synthesized assistant speech audio.
	KindSpeechFrame Kind = "assistant_speech.frame"
)

// PlaybackChunkRequested carries a text chunk handed to the synthesizer.
// Synthesis backends may emit this without a preceding PlaybackStarted; the
// first chunk then implies playback start.
type PlaybackChunkRequested struct {
	Base
	Text string
}

// NewPlaybackChunkRequested creates a playback chunk requested event.
func NewPlaybackChunkRequested(text string) PlaybackChunkRequested {
	return PlaybackChunkRequested{Base: NewBase(KindPlaybackChunkRequested), Text: text}
}

// PlaybackStarted marks the start of synthesized audio playback.
type PlaybackStarted struct{ Base }

// NewPlaybackStarted creates a playback started event.
func NewPlaybackStarted() PlaybackStarted {
	return PlaybackStarted{Base: NewBase(KindPlaybackStarted)}
}

// PlaybackStopped marks the end of synthesized audio playback.
type PlaybackStopped struct{ Base }

// NewPlaybackStopped creates a playback stopped event.
func NewPlaybackStopped() PlaybackStopped {
	return PlaybackStopped{Base: NewBase(KindPlaybackStopped)}
}

// SpeechFrame carries a synthesized assistant speech audio frame.
type SpeechFrame struct {
	Base
	Audio []byte
}

// NewSpeechFrame creates an assistant speech audio frame event.
func NewSpeechFrame(audio []byte) SpeechFrame {
	return SpeechFrame{Base: NewBase(KindSpeechFrame), Audio: audio}
}
