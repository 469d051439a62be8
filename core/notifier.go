package pipeline

import (
	"log"

	"github.com/foliovoice/folio-core/core/notify"
)

// notifier delivers out-of-band notifications to the configured sink.
// Delivery is strictly best-effort: a broken or panicking sink must never
// stall or reorder the event flow it reports on.
type notifier struct {
	sink notify.Sink
}

func newNotifier(sink notify.Sink) *notifier {
	return &notifier{sink: sink}
}

func (n *notifier) send(notification notify.Notification) {
	if n == nil || n.sink == nil {
		return
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			log.Println("Notification sink panicked", recovered)
		}
	}()

	if err := n.sink.Send(notification); err != nil {
		log.Println("Failed to send notification", "error", err)
	}
}

func (n *notifier) sendStatus(status notify.Status) {
	n.send(notify.NewStatus(status))
}

func (n *notifier) sendStatusText(status notify.Status, text string) {
	n.send(notify.NewStatusText(status, text))
}

func (n *notifier) sendTranscript(role notify.Role, text string, final bool, messageID int) {
	n.send(notify.NewTranscript(role, text, final, messageID))
}

func (n *notifier) sendLog(text string) {
	n.send(notify.NewLog(text))
}
