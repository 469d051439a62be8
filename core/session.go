// Package pipeline orchestrates a voice question-answering session over a
// single ordered event flow. Audio, transcription, response generation and
// speech synthesis all communicate through typed events ingested into one
// FIFO queue; observers along the flow report progress to a notification
// sink without ever reordering or altering the events they watch.
package pipeline

import (
	"context"
	"log"
	"sync"

	"github.com/foliovoice/folio-core/core/audio"
	"github.com/foliovoice/folio-core/core/documents"
	"github.com/foliovoice/folio-core/core/events"
	"github.com/foliovoice/folio-core/core/llms"
	"github.com/foliovoice/folio-core/core/notify"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Session runs one voice conversation end to end: audio in, transcription,
// response generation, speech synthesis, and out-of-band progress
// notifications.
type Session struct {
	player   *eventPlayer
	notifier *notifier

	conversation conversation

	// speechToText is the STT facade used to handle optional client wiring.
	speechToText speechToText
	textToSpeech textToSpeech
	llm          llm

	document     *documents.Reference
	encodingInfo audio.EncodingInfo

	runOptions  RunOptions
	baseContext context.Context

	closeOnce  sync.Once
	cancelHook chan struct{}

	activeTurnMu sync.Mutex
	activeTurn   *activeTurn
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		player:       newEventPlayer(),
		notifier:     newNotifier(nil),
		speechToText: newSpeechToText(),
		textToSpeech: newTextToSpeech(),
		llm:          newLLM(),
		encodingInfo: audio.GetDefaultEncodingInfo(),
		baseContext:  context.Background(),
	}
	s.llm.setInstructions(SystemPromptWithoutDocument)

	for _, opt := range opts {
		opt(s)
	}

	s.llm.setEventEmitter(s.ingest)
	s.textToSpeech.setEventEmitter(s.ingest)
	s.speechToText.setEventEmitter(s.ingest)

	return s
}

// Run starts the session: the event loop begins draining the queue, the
// speech-to-text stream opens, the connected status is reported, and the
// assistant produces its opening greeting.
//
// Contract: call Run at most once per session instance. ctx is the base
// context for all turns; cancelling it closes the session.
func (s *Session) Run(ctx context.Context, opts ...RunOption) {
	if !s.player.CanIngest() {
		log.Println("Warning: session already closed, skipping Run")
		return
	}

	s.runOptions = RunOptions{}
	for _, opt := range opts {
		opt(&s.runOptions)
	}

	s.baseContext = ctx

	forwardToCallbacks := newCallbackEmitter(s.runOptions)
	speechObserver := newSpeechObserver(s.notifier, forwardToCallbacks)
	responseObserver := newResponseObserver(s.notifier, speechObserver.observe)
	transcriptObserver := newTranscriptObserver(s.notifier, responseObserver.observe)

	process := func(ctx context.Context, event events.Event) {
		transcriptObserver.observe(event)
		s.react(ctx, event)
	}

	if started := s.player.StartLoop(ctx, process); started {
		s.cancelHook = withContextCancelHook(ctx, s.Close)
	}

	if err := s.speechToText.start(ctx, s.encodingInfo); err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	s.notifier.sendStatus(notify.StatusConnected)
	s.ingest(events.NewRunRequested(s.greetingPrompt()))
}

func (s *Session) greetingPrompt() string {
	if s.document != nil {
		return GreetingPromptWithDocument(s.document.Title)
	}
	return GreetingPromptWithoutDocument
}

// Handle ingests an externally produced event into the session's queue.
func (s *Session) Handle(event events.Event) { s.ingest(event) }

// SendPrompt submits typed user input, which flows through the session the
// same way a final transcription does.
func (s *Session) SendPrompt(prompt string) { s.ingest(events.NewTranscriptFinal(prompt)) }

// Interrupt signals that the user cut the assistant off. The active turn is
// cancelled and any in-flight speech synthesis is dropped.
func (s *Session) Interrupt() { s.ingest(events.NewInterruptionSignaled()) }

// SendAudio forwards captured user audio to the transcription stream.
func (s *Session) SendAudio(audio []byte) error { return s.speechToText.SendAudio(audio) }

// History returns a point-in-time snapshot of the conversation so far.
func (s *Session) History() []llms.Turn { return s.conversation.History() }

// Close shuts the session down. The event being processed when Close is
// called still completes; AwaitDone blocks until the loop has drained.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.player.Stop()

		s.cancelActiveTurn()
		s.textToSpeech.close()

		if err := s.speechToText.Close(s.baseContext); err != nil {
			span := trace.SpanFromContext(s.baseContext)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		if s.cancelHook != nil {
			close(s.cancelHook)
		}
	})
}

// AwaitDone blocks until the event loop has stopped.
func (s *Session) AwaitDone() {
	s.player.AwaitDone()
}

func (s *Session) ingest(event events.Event) {
	if !s.player.Ingest(event) {
		log.Println("Warning: event dropped, session closed", "kind", event.Kind())
	}
}

// react drives the stages that act on events after the observers have seen
// them. Produced events are ingested back into the same queue, preserving
// the single ordered flow.
func (s *Session) react(ctx context.Context, event events.Event) {
	switch typedEvent := event.(type) {
	case events.TranscriptFinal:
		s.startTurn(typedEvent.Text)

	case events.RunRequested:
		s.startTurn(typedEvent.Prompt)

	case events.GenerationStarted:
		if err := s.textToSpeech.startResponse(s.baseContext); err != nil {
			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

	case events.GenerationChunk:
		if err := s.textToSpeech.speak(typedEvent.Text); err != nil {
			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
		}

	case events.GenerationEnded:
		if err := s.textToSpeech.endResponse(); err != nil {
			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
		}

	case events.InterruptionSignaled:
		s.cancelActiveTurn()
		s.textToSpeech.cancel()
	}
}

func (s *Session) cancelActiveTurn() {
	s.activeTurnMu.Lock()
	defer s.activeTurnMu.Unlock()

	if s.activeTurn != nil {
		s.activeTurn.Cancel()
	}
}

// startTurn runs one assistant turn in its own worker. A turn that is still
// running when the next utterance arrives is cancelled and replaced.
func (s *Session) startTurn(prompt string) {
	s.activeTurnMu.Lock()
	if s.activeTurn != nil {
		s.activeTurn.Cancel()
	}
	turn := newActiveTurn(s.baseContext)
	s.activeTurn = turn
	s.activeTurnMu.Unlock()

	worker := panicSafeNamedWorker("turn", func(ctx context.Context) error {
		return s.processTurn(ctx, turn, prompt)
	})

	go func() {
		defer close(turn.done)

		if err := worker(turn.ctx); err != nil {
			s.ingest(events.NewGenerationEnded())
			s.ingest(events.NewTurnFailed(turn.id, err.Error()))
		}
	}()
}

func (s *Session) processTurn(ctx context.Context, turn *activeTurn, prompt string) error {
	ctx, span := tracer.Start(ctx, "process turn")
	defer span.End()
	span.SetAttributes(attribute.String("turn.id", turn.id))

	s.ingest(events.NewTurnStarted(turn.id))
	s.ingest(events.NewGenerationStarted())

	response, err := s.llm.generate(ctx, prompt, s.conversation.History(),
		func(chunk string) { s.ingest(events.NewGenerationChunk(chunk)) },
		turn.IsCancelled,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if turn.IsCancelled() || response == nil {
		span.AddEvent("turn cancelled")
		return nil
	}

	s.conversation.append(
		llms.Turn{Role: llms.TurnRoleUser, Content: prompt},
		llms.Turn{Role: llms.TurnRoleAssistant, Content: response.Content, ToolCalls: response.ToolCalls},
	)
	s.ingest(events.NewGenerationEnded())
	s.ingest(events.NewTurnCompleted(turn.id))
	return nil
}
