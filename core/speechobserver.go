package pipeline

import (
	"fmt"

	"github.com/foliovoice/folio-core/core/events"
	"github.com/foliovoice/folio-core/core/notify"
)

const speechLogPreviewLength = 30

// speechObserver watches synthesized playback and keeps the single
// speaking/idle flag the status notifications are derived from. Duplicate
// transitions are suppressed, so an interruption that lands before the
// playback-stopped event swallows the later idle report.
type speechObserver struct {
	notifier *notifier
	forward  emitter

	isSpeaking bool
}

func newSpeechObserver(notifier *notifier, forward emitter) *speechObserver {
	if forward == nil {
		forward = noopEmitter
	}
	return &speechObserver{notifier: notifier, forward: forward}
}

func (o *speechObserver) observe(event events.Event) {
	switch typedEvent := event.(type) {
	case events.InterruptionSignaled:
		if o.isSpeaking {
			o.isSpeaking = false
			o.notifier.sendStatus(notify.StatusIdle)
			o.notifier.sendLog("Interrupted by user")
		}

	case events.PlaybackStarted:
		if !o.isSpeaking {
			o.isSpeaking = true
			o.notifier.sendStatus(notify.StatusTTS)
			o.notifier.sendLog("TTS speaking...")
		}

	case events.PlaybackStopped:
		if o.isSpeaking {
			o.isSpeaking = false
			o.notifier.sendStatus(notify.StatusIdle)
			o.notifier.sendLog("Ready")
		}

	case events.PlaybackChunkRequested:
		if !o.isSpeaking {
			o.isSpeaking = true
			o.notifier.sendStatus(notify.StatusTTS)
		}
		o.notifier.sendLog(fmt.Sprintf("TTS: %q", notify.Preview(typedEvent.Text, speechLogPreviewLength)))
	}

	o.forward(event)
}
