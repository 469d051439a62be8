package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/foliovoice/folio-core/core/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const sessionEventQueueCapacity = 512

// eventPlayer owns the single FIFO queue every session event flows through.
// Events are taken off the queue one at a time, so downstream observers see
// them in exactly the order they were ingested.
type eventPlayer struct {
	queue   chan eventQueueItem
	closeCh chan struct{}
	done    chan struct{}

	startOnce sync.Once
	endOnce   sync.Once

	started atomic.Bool
}

func newEventPlayer() *eventPlayer {
	return &eventPlayer{
		queue:   make(chan eventQueueItem, sessionEventQueueCapacity),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (loop *eventPlayer) CanIngest() bool {
	if loop == nil {
		return false
	}

	select {
	case <-loop.closeCh:
		return false
	default:
		return true
	}
}

func (loop *eventPlayer) StartLoop(baseCtx context.Context, process func(context.Context, events.Event)) (started bool) {
	if loop == nil || process == nil || !loop.CanIngest() {
		return false
	}

	loop.startOnce.Do(func() {
		if !loop.CanIngest() {
			return
		}

		started = true
		loop.started.Store(true)
		go func() {
			defer close(loop.done)

			for {
				select {
				case <-loop.closeCh:
					return
				case queuedEvent := <-loop.queue:
					loop.processQueuedEvent(baseCtx, queuedEvent, process)
				}
			}
		}()
	})

	return started
}

// Stop closes the queue for new events. The event being processed when Stop
// is called still completes.
func (loop *eventPlayer) Stop() {
	if loop == nil {
		return
	}

	loop.endOnce.Do(func() { close(loop.closeCh) })
}

func (loop *eventPlayer) AwaitDone() {
	if loop == nil {
		return
	}

	if loop.started.Load() {
		<-loop.done
	}
}

type eventQueueItem struct {
	event    events.Event
	queuedAt time.Time
}

func (loop *eventPlayer) Ingest(event events.Event) bool {
	if loop == nil || !loop.CanIngest() {
		return false
	}

	queueItem := eventQueueItem{event: event, queuedAt: time.Now()}
	select {
	case <-loop.closeCh:
		return false
	case loop.queue <- queueItem:
		return true
	}
}

func (loop *eventPlayer) processQueuedEvent(
	baseContext context.Context,
	queuedEvent eventQueueItem,
	process func(context.Context, events.Event),
) {
	if loop == nil || process == nil {
		return
	}

	ctx, span := tracer.Start(baseContext, "process event")
	defer span.End()

	queuedTime := time.Since(queuedEvent.queuedAt).Seconds()
	span.SetAttributes(
		attribute.String("event.kind", string(queuedEvent.event.Kind())),
		attribute.Float64("event.queued_time", queuedTime),
	)
	span.AddEvent("taken out of queue", trace.WithAttributes(attribute.Float64("event.queued_time", queuedTime)))

	process(ctx, queuedEvent.event)
}

func (loop *eventPlayer) queuedEventCount() int {
	if loop == nil {
		return 0
	}

	return len(loop.queue)
}
