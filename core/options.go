package pipeline

import (
	"context"

	"github.com/foliovoice/folio-core/core/audio"
	"github.com/foliovoice/folio-core/core/documents"
	"github.com/foliovoice/folio-core/core/llms"
	"github.com/foliovoice/folio-core/core/notify"
	"github.com/foliovoice/folio-core/core/speechtotext"
	"github.com/foliovoice/folio-core/core/texttospeech"
	"github.com/foliovoice/folio-core/core/websearch"
)

type SessionOption func(*Session)

// LLMWithStream generates assistant responses as a chunk stream.
type LLMWithStream interface {
	PromptWithStream(ctx context.Context, prompt *string, opts ...llms.GenerateOption) llms.Stream
}

func WithStreamingLLM(client LLMWithStream) SessionOption {
	return func(s *Session) {
		s.llm.set(client)
	}
}

type SpeechToText interface {
	Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	SendAudio(audio []byte) error
}

func WithSpeechToTextClient(client SpeechToText) SessionOption {
	return func(s *Session) {
		s.speechToText.set(client)
	}
}

type TextToSpeech interface {
	NewSpeechGenerator(ctx context.Context, opts ...texttospeech.TextToSpeechOption) (texttospeech.SpeechGenerator, error)
}

func WithTextToSpeechClient(client TextToSpeech) SessionOption {
	return func(s *Session) {
		s.textToSpeech.set(client)
	}
}

// WithNotificationSink registers the sink that receives status, transcript
// and log notifications produced by the session's observers.
func WithNotificationSink(sink notify.Sink) SessionOption {
	return func(s *Session) {
		s.notifier = newNotifier(sink)
	}
}

func WithTools(tools ...llms.Tool) SessionOption {
	return func(s *Session) {
		s.llm.appendTools(tools...)
	}
}

// WithWebSearcher exposes live web search to the assistant. A nil searcher
// still registers the tool; invocations then report that search is not
// configured.
func WithWebSearcher(searcher websearch.Searcher) SessionOption {
	return func(s *Session) {
		s.llm.appendTools(websearch.Tool(searcher))
	}
}

// WithSystemPrompt overrides the instructions derived from the document
// state.
func WithSystemPrompt(instructions string) SessionOption {
	return func(s *Session) {
		s.llm.setInstructions(instructions)
	}
}

// WithDocument attaches an uploaded document to the session. The assistant
// is instructed to answer questions about it and the opening greeting
// references it by title.
func WithDocument(reference documents.Reference) SessionOption {
	return func(s *Session) {
		s.document = &reference
		s.llm.setInstructions(SystemPromptWithDocument)
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SessionOption {
	return func(s *Session) {
		if encodingInfo.IsZero() {
			return
		}
		s.encodingInfo = encodingInfo
	}
}

type RunOptions struct {
	onTranscription        func(transcript string)
	onInterimTranscription func(transcript string)
	onSpeakingStateChanged func(isSpeaking bool)
	onResponse             func(response string)
	onResponseEnd          func()
	onCancellation         func()
	onAudio                func(audio []byte)
	onAudioEnded           func()
}

type RunOption func(*RunOptions)

// WithTranscriptionCallback registers a callback for final transcriptions
// produced by the configured speech-to-text client.
func WithTranscriptionCallback(callback func(transcript string)) RunOption {
	return func(o *RunOptions) {
		o.onTranscription = callback
	}
}

// WithInterimTranscriptionCallback registers a callback for interim
// transcriptions produced by the configured speech-to-text client.
func WithInterimTranscriptionCallback(callback func(transcript string)) RunOption {
	return func(o *RunOptions) {
		o.onInterimTranscription = callback
	}
}

// WithSpeakingStateChangedCallback registers a callback for user
// speaking-state updates.
func WithSpeakingStateChangedCallback(callback func(isSpeaking bool)) RunOption {
	return func(o *RunOptions) {
		o.onSpeakingStateChanged = callback
	}
}

func WithResponseCallback(callback func(response string)) RunOption {
	return func(o *RunOptions) {
		o.onResponse = callback
	}
}

func WithResponseEndCallback(callback func()) RunOption {
	return func(o *RunOptions) {
		o.onResponseEnd = callback
	}
}

func WithCancellationCallback(callback func()) RunOption {
	return func(o *RunOptions) {
		o.onCancellation = callback
	}
}

func WithAudioCallback(callback func(audio []byte)) RunOption {
	return func(o *RunOptions) {
		o.onAudio = callback
	}
}

func WithAudioEndedCallback(callback func()) RunOption {
	return func(o *RunOptions) {
		o.onAudioEnded = callback
	}
}
