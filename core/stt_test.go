package pipeline

import (
	"context"
	"testing"

	"github.com/foliovoice/folio-core/core/audio"
	"github.com/foliovoice/folio-core/core/events"
	"github.com/foliovoice/folio-core/core/speechtotext"
)

type fakeSpeechToTextClient struct {
	options   speechtotext.TranscriptionOptions
	sentAudio [][]byte
	stopped   bool
}

func (c *fakeSpeechToTextClient) Transcribe(_ context.Context, opts ...speechtotext.TranscriptionOption) error {
	for _, opt := range opts {
		opt(&c.options)
	}
	return nil
}

func (c *fakeSpeechToTextClient) SendAudio(audio []byte) error {
	c.sentAudio = append(c.sentAudio, audio)
	return nil
}

func (c *fakeSpeechToTextClient) StopStream() error {
	c.stopped = true
	return nil
}

func TestSpeechToTextTranslatesCallbacksToEvents(t *testing.T) {
	client := &fakeSpeechToTextClient{}
	emitted := []events.Event{}

	stt := newSpeechToText()
	stt.set(client)
	stt.setEventEmitter(collectEmitter(&emitted))

	if err := stt.start(context.Background(), audio.GetDefaultEncodingInfo()); err != nil {
		t.Fatalf("failed to start transcription: %s", err)
	}

	client.options.SpeechStartedCallback()
	client.options.InterimTranscriptionCallback("What is")
	client.options.TranscriptionCallback("What is this about?")
	client.options.SpeechEndedCallback()

	expected := []events.Kind{
		events.KindUserSpeechStarted,
		events.KindTranscriptPartial,
		events.KindTranscriptFinal,
		events.KindUserSpeechEnded,
	}
	if len(emitted) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(emitted))
	}
	for i := range expected {
		if emitted[i].Kind() != expected[i] {
			t.Fatalf("expected event %d to be %q, got %q", i, expected[i], emitted[i].Kind())
		}
	}

	finalTranscript, ok := emitted[2].(events.TranscriptFinal)
	if !ok || finalTranscript.Text != "What is this about?" {
		t.Fatalf("expected the final transcript text carried over, got %v", emitted[2])
	}
}

func TestSpeechToTextForwardsAudio(t *testing.T) {
	client := &fakeSpeechToTextClient{}
	stt := newSpeechToText()
	stt.set(client)

	if err := stt.SendAudio([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("failed to send audio: %s", err)
	}

	if len(client.sentAudio) != 1 {
		t.Fatalf("expected 1 audio frame forwarded, got %d", len(client.sentAudio))
	}
}

func TestSpeechToTextCloseUsesStopStream(t *testing.T) {
	client := &fakeSpeechToTextClient{}
	stt := newSpeechToText()
	stt.set(client)

	if err := stt.Close(context.Background()); err != nil {
		t.Fatalf("failed to close: %s", err)
	}

	if !client.stopped {
		t.Fatalf("expected the stream stopped on close")
	}
}

func TestSpeechToTextWithoutClientIsNoop(t *testing.T) {
	stt := newSpeechToText()

	if err := stt.start(context.Background(), audio.GetDefaultEncodingInfo()); err != nil {
		t.Fatalf("expected starting without a client to be a no-op, got %s", err)
	}
	if err := stt.SendAudio([]byte{0x01}); err != nil {
		t.Fatalf("expected sending audio without a client to be a no-op, got %s", err)
	}
	if err := stt.Close(context.Background()); err != nil {
		t.Fatalf("expected closing without a client to be a no-op, got %s", err)
	}
}
