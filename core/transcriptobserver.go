package pipeline

import (
	"fmt"

	"github.com/foliovoice/folio-core/core/events"
	"github.com/foliovoice/folio-core/core/notify"
)

const transcriptLogPreviewLength = 50

// transcriptObserver watches the transcription side of the event flow and
// reports user speech progress to the notification sink. Every event is
// forwarded untouched regardless of what notifications it triggers.
type transcriptObserver struct {
	notifier *notifier
	forward  emitter

	userMessageID int
}

func newTranscriptObserver(notifier *notifier, forward emitter) *transcriptObserver {
	if forward == nil {
		forward = noopEmitter
	}
	return &transcriptObserver{notifier: notifier, forward: forward}
}

func (o *transcriptObserver) observe(event events.Event) {
	switch typedEvent := event.(type) {
	case events.TranscriptPartial:
		o.notifier.sendStatusText(notify.StatusListening, typedEvent.Text)

	case events.TranscriptFinal:
		o.userMessageID++
		o.notifier.sendStatusText(notify.StatusSTT, typedEvent.Text)
		o.notifier.sendLog(fmt.Sprintf("STT: %q", notify.Preview(typedEvent.Text, transcriptLogPreviewLength)))
		o.notifier.sendTranscript(notify.RoleUser, typedEvent.Text, true, o.userMessageID)
		o.notifier.sendStatus(notify.StatusLLM)
		o.notifier.sendLog("Sending to LLM...")
	}

	o.forward(event)
}
