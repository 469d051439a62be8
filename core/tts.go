package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/foliovoice/folio-core/core/events"
	"github.com/foliovoice/folio-core/core/texttospeech"
)

// sentenceTerminators are the characters speech chunks are cut at. Text is
// held back until a terminator arrives so the synthesizer receives whole
// sentences instead of token fragments.
const sentenceTerminators = ".!?"

type textToSpeech struct {
	// client stores the configured text-to-speech implementation.
	client TextToSpeech

	emitEvent emitter

	mu          sync.Mutex
	generator   texttospeech.SpeechGenerator
	pendingText string
}

func newTextToSpeech() textToSpeech {
	return textToSpeech{emitEvent: noopEmitter}
}

func (t *textToSpeech) set(client TextToSpeech) {
	if t != nil {
		t.client = client
	}
}

func (t *textToSpeech) setEventEmitter(emitEvent emitter) {
	if t == nil {
		return
	}

	if emitEvent != nil {
		t.emitEvent = emitEvent
	} else {
		t.emitEvent = noopEmitter
	}
}

func (t *textToSpeech) isConfigured() bool {
	return t != nil && t.client != nil
}

// startResponse opens a speech generation stream for the next assistant
// response. Any previous stream is cancelled first.
func (t *textToSpeech) startResponse(ctx context.Context) error {
	if !t.isConfigured() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.generator != nil {
		_ = t.generator.Cancel()
	}
	t.pendingText = ""

	playbackOnce := &sync.Once{}
	generator, err := t.client.NewSpeechGenerator(ctx,
		texttospeech.WithSpeechAudioCallback(func(audio []byte) {
			playbackOnce.Do(func() { t.emitEvent(events.NewPlaybackStarted()) })
			t.emitEvent(events.NewSpeechFrame(audio))
		}),
		texttospeech.WithSpeechEndedCallback(func() {
			t.emitEvent(events.NewPlaybackStopped())
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to open speech generation stream: %w", err)
	}

	t.generator = generator
	return nil
}

// speak buffers streamed response text and hands completed sentences to the
// synthesizer.
func (t *textToSpeech) speak(text string) error {
	if !t.isConfigured() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.generator == nil {
		return fmt.Errorf("no active speech generation stream")
	}

	t.pendingText += text
	if cut := strings.LastIndexAny(t.pendingText, sentenceTerminators); cut >= 0 {
		sentence := t.pendingText[:cut+1]
		t.pendingText = t.pendingText[cut+1:]
		return t.sendSentenceLocked(sentence)
	}

	return nil
}

// endResponse flushes remaining text and signals the synthesizer that the
// response is complete.
func (t *textToSpeech) endResponse() error {
	if !t.isConfigured() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.generator == nil {
		return nil
	}

	if remainder := strings.TrimSpace(t.pendingText); remainder != "" {
		if err := t.sendSentenceLocked(remainder); err != nil {
			return err
		}
	}
	t.pendingText = ""

	if err := t.generator.EndOfText(); err != nil {
		return fmt.Errorf("failed to end speech generation stream: %w", err)
	}
	// The generator keeps delivering audio through its callbacks until the
	// remaining speech is produced, it only stops accepting text.
	t.generator = nil
	return nil
}

// cancel drops buffered text and stops any in-flight speech generation.
func (t *textToSpeech) cancel() {
	if !t.isConfigured() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pendingText = ""
	if t.generator != nil {
		_ = t.generator.Cancel()
		t.generator = nil
	}
}

func (t *textToSpeech) close() {
	if !t.isConfigured() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pendingText = ""
	if t.generator != nil {
		_ = t.generator.Close()
		t.generator = nil
	}
}

func (t *textToSpeech) sendSentenceLocked(sentence string) error {
	t.emitEvent(events.NewPlaybackChunkRequested(sentence))
	if err := t.generator.SendText(sentence); err != nil {
		return fmt.Errorf("failed to send text to speech generator: %w", err)
	}
	if err := t.generator.Mark(); err != nil {
		return fmt.Errorf("failed to mark speech generator text: %w", err)
	}

	return nil
}
