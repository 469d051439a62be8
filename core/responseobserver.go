package pipeline

import (
	"fmt"
	"strings"

	"github.com/foliovoice/folio-core/core/events"
	"github.com/foliovoice/folio-core/core/notify"
)

// responseObserver watches response generation and streams the accumulating
// assistant transcript to the notification sink. A generation start while a
// previous response is still accumulating discards the unfinished text.
type responseObserver struct {
	notifier *notifier
	forward  emitter

	responseText       strings.Builder
	assistantMessageID int
}

func newResponseObserver(notifier *notifier, forward emitter) *responseObserver {
	if forward == nil {
		forward = noopEmitter
	}
	return &responseObserver{notifier: notifier, forward: forward}
}

func (o *responseObserver) observe(event events.Event) {
	switch typedEvent := event.(type) {
	case events.GenerationStarted:
		o.responseText.Reset()
		o.assistantMessageID++
		o.notifier.sendLog("LLM streaming response...")

	case events.GenerationChunk:
		o.responseText.WriteString(typedEvent.Text)
		o.notifier.sendTranscript(notify.RoleAssistant, o.responseText.String(), false, o.assistantMessageID)

	case events.GenerationEnded:
		if o.responseText.Len() > 0 {
			o.notifier.sendTranscript(notify.RoleAssistant, o.responseText.String(), true, o.assistantMessageID)
			o.notifier.sendLog(fmt.Sprintf("LLM complete: %d chars", o.responseText.Len()))
			o.responseText.Reset()
		}
		o.notifier.sendLog("Sending to TTS...")
	}

	o.forward(event)
}
