package events

const (
	// KindUserAudioFrame identifies raw user input audio.
	KindUserAudioFrame Kind = "user_input.audio_frame"
	// KindUserSpeechStarted identifies the start of user speech activity.
	KindUserSpeechStarted Kind = "user_input.speech_started"
	// KindUserSpeechEnded identifies the end of user speech activity.
	KindUserSpeechEnded Kind = "user_input.speech_ended"
	// KindTranscriptPartial identifies an interim transcription snapshot.
	KindTranscriptPartial Kind = "user_input.transcript_partial"
	// KindTranscriptFinal identifies the terminal transcription for an
	// utterance.
	KindTranscriptFinal Kind = "user_input.transcript_final"
	// KindInterruptionSignaled identifies a user interruption raised by the
	// transport while synthesis was in progress.
	KindInterruptionSignaled Kind = "user_input.interruption"
)

// UserAudioFrame carries a raw user input audio frame.
type UserAudioFrame struct {
	Base
	Audio []byte
}

// NewUserAudioFrame creates a user audio frame event.
func NewUserAudioFrame(audio []byte) UserAudioFrame {
	return UserAudioFrame{Base: NewBase(KindUserAudioFrame), Audio: audio}
}

// UserSpeechStarted marks the start of user speech activity.
type UserSpeechStarted struct{ Base }

// NewUserSpeechStarted creates a user speech started event.
func NewUserSpeechStarted() UserSpeechStarted {
	return UserSpeechStarted{Base: NewBase(KindUserSpeechStarted)}
}

// UserSpeechEnded marks the end of user speech activity.
type UserSpeechEnded struct{ Base }

// NewUserSpeechEnded creates a user speech ended event.
func NewUserSpeechEnded() UserSpeechEnded {
	return UserSpeechEnded{Base: NewBase(KindUserSpeechEnded)}
}

// TranscriptPartial carries an interim transcription snapshot. Later
// snapshots replace earlier ones; the empty string is a valid snapshot.
type TranscriptPartial struct {
	Base
	Text string
}

// NewTranscriptPartial creates an interim transcription event.
func NewTranscriptPartial(text string) TranscriptPartial {
	return TranscriptPartial{Base: NewBase(KindTranscriptPartial), Text: text}
}

// TranscriptFinal carries the terminal transcription for one user utterance.
type TranscriptFinal struct {
	Base
	Text string
}

// NewTranscriptFinal creates a final transcription event.
func NewTranscriptFinal(text string) TranscriptFinal {
	return TranscriptFinal{Base: NewBase(KindTranscriptFinal), Text: text}
}

// InterruptionSignaled marks the user starting to speak while synthesized
// audio was believed to be playing.
type InterruptionSignaled struct{ Base }

// NewInterruptionSignaled creates an interruption event.
func NewInterruptionSignaled() InterruptionSignaled {
	return InterruptionSignaled{Base: NewBase(KindInterruptionSignaled)}
}
