package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// activeTurn tracks one in-flight assistant turn. A turn is cancelled when
// the user interrupts or a newer utterance replaces it.
type activeTurn struct {
	id string

	ctx    context.Context
	cancel context.CancelFunc

	cancelled atomic.Bool
	done      chan struct{}
}

func newActiveTurn(baseCtx context.Context) *activeTurn {
	ctx, cancel := context.WithCancel(baseCtx)
	return &activeTurn{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (t *activeTurn) Cancel() {
	if t == nil {
		return
	}

	t.cancelled.Store(true)
	t.cancel()
}

func (t *activeTurn) IsCancelled() bool {
	if t == nil {
		return false
	}

	return t.cancelled.Load()
}

func (t *activeTurn) AwaitDone() {
	if t == nil {
		return
	}

	<-t.done
}
