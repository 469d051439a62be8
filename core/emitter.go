package pipeline

import "github.com/foliovoice/folio-core/core/events"

type emitter func(events.Event)

func noopEmitter(events.Event) {}

// newCallbackEmitter converts forwarded events into the caller-facing
// callbacks registered through Run options.
func newCallbackEmitter(opts RunOptions) emitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.UserSpeechStarted:
			if opts.onSpeakingStateChanged != nil {
				opts.onSpeakingStateChanged(true)
			}
		case events.UserSpeechEnded:
			if opts.onSpeakingStateChanged != nil {
				opts.onSpeakingStateChanged(false)
			}
		case events.TranscriptPartial:
			if opts.onInterimTranscription != nil {
				opts.onInterimTranscription(typedEvent.Text)
			}
		case events.TranscriptFinal:
			if opts.onTranscription != nil {
				opts.onTranscription(typedEvent.Text)
			}
		case events.GenerationChunk:
			if opts.onResponse != nil {
				opts.onResponse(typedEvent.Text)
			}
		case events.GenerationEnded:
			if opts.onResponseEnd != nil {
				opts.onResponseEnd()
			}
		case events.SpeechFrame:
			if opts.onAudio != nil {
				opts.onAudio(typedEvent.Audio)
			}
		case events.PlaybackStopped:
			if opts.onAudioEnded != nil {
				opts.onAudioEnded()
			}
		case events.InterruptionSignaled:
			if opts.onCancellation != nil {
				opts.onCancellation()
			}
		}
	}
}
