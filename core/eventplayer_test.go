package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/foliovoice/folio-core/core/events"
)

func TestEventPlayerPreservesIngestionOrder(t *testing.T) {
	player := newEventPlayer()
	defer player.Stop()

	var mu sync.Mutex
	processed := []events.Kind{}
	lastEvent := make(chan struct{})
	if !player.StartLoop(context.Background(), func(_ context.Context, event events.Event) {
		mu.Lock()
		processed = append(processed, event.Kind())
		mu.Unlock()
		if event.Kind() == events.KindGenerationEnded {
			close(lastEvent)
		}
	}) {
		t.Fatalf("expected the loop to start")
	}

	ingested := []events.Event{
		events.NewTranscriptFinal("hello"),
		events.NewGenerationStarted(),
		events.NewGenerationChunk("hi"),
		events.NewGenerationEnded(),
	}
	for _, event := range ingested {
		if !player.Ingest(event) {
			t.Fatalf("expected %q to be ingested", event.Kind())
		}
	}

	select {
	case <-lastEvent:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the queue to drain")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(processed) != len(ingested) {
		t.Fatalf("expected %d processed events, got %d", len(ingested), len(processed))
	}
	for i := range ingested {
		if processed[i] != ingested[i].Kind() {
			t.Fatalf("expected event %d to be %q, got %q", i, ingested[i].Kind(), processed[i])
		}
	}
}

func TestEventPlayerRejectsIngestAfterStop(t *testing.T) {
	player := newEventPlayer()
	player.StartLoop(context.Background(), func(context.Context, events.Event) {})

	player.Stop()
	player.AwaitDone()

	if player.CanIngest() {
		t.Fatalf("expected ingestion to be closed after stop")
	}
	if player.Ingest(events.NewGenerationStarted()) {
		t.Fatalf("expected ingestion to fail after stop")
	}
}

func TestEventPlayerStartLoopOnlyOnce(t *testing.T) {
	player := newEventPlayer()
	defer player.Stop()

	if !player.StartLoop(context.Background(), func(context.Context, events.Event) {}) {
		t.Fatalf("expected the first start to succeed")
	}
	if player.StartLoop(context.Background(), func(context.Context, events.Event) {}) {
		t.Fatalf("expected the second start to be a no-op")
	}
}

func TestEventPlayerNilReceiver(t *testing.T) {
	var player *eventPlayer

	if player.CanIngest() {
		t.Fatalf("expected a nil player to refuse ingestion")
	}
	if player.StartLoop(context.Background(), func(context.Context, events.Event) {}) {
		t.Fatalf("expected a nil player to refuse starting")
	}
	if player.Ingest(events.NewGenerationStarted()) {
		t.Fatalf("expected a nil player to drop events")
	}
	player.Stop()
	player.AwaitDone()
}
