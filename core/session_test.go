package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/foliovoice/folio-core/core/documents"
	"github.com/foliovoice/folio-core/core/llms"
	"github.com/foliovoice/folio-core/core/notify"
)

type fakeContentChunk struct{ content string }

func (c fakeContentChunk) FinishReason() *string { return nil }

func (c fakeContentChunk) Content() string { return c.content }

type fakeToolCallChunk struct{ toolCall llms.ToolCall }

func (c fakeToolCallChunk) FinishReason() *string { return nil }

func (c fakeToolCallChunk) ToolCall() llms.ToolCall { return c.toolCall }

type fakeStream struct{ chunks []llms.StreamChunk }

func (s fakeStream) Chunks(context.Context) func(func(llms.StreamChunk, error) bool) {
	return func(yield func(llms.StreamChunk, error) bool) {
		for _, chunk := range s.chunks {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

func contentStream(chunks ...string) llms.Stream {
	stream := fakeStream{}
	for _, chunk := range chunks {
		stream.chunks = append(stream.chunks, fakeContentChunk{content: chunk})
	}
	return stream
}

type fakeLLM struct {
	mu      sync.Mutex
	streams []llms.Stream
	calls   []llms.GenerateOptions
}

func (l *fakeLLM) PromptWithStream(_ context.Context, _ *string, opts ...llms.GenerateOption) llms.Stream {
	l.mu.Lock()
	defer l.mu.Unlock()

	options := llms.GenerateOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	l.calls = append(l.calls, options)

	if len(l.streams) == 0 {
		return fakeStream{}
	}
	stream := l.streams[0]
	l.streams = l.streams[1:]
	return stream
}

func (l *fakeLLM) recordedCalls() []llms.GenerateOptions {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]llms.GenerateOptions(nil), l.calls...)
}

type concurrentSink struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

func (s *concurrentSink) Send(notification notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *concurrentSink) snapshot() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]notify.Notification(nil), s.notifications...)
}

func awaitSignal(t *testing.T, signal <-chan struct{}, what string) {
	t.Helper()

	select {
	case <-signal:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestSessionRunGreetsOnConnect(t *testing.T) {
	llmClient := &fakeLLM{streams: []llms.Stream{
		contentStream("Hello! Please ", "upload a document."),
	}}
	sink := &concurrentSink{}
	session := NewSession(
		WithStreamingLLM(llmClient),
		WithNotificationSink(sink),
	)
	defer session.Close()

	responseEnded := make(chan struct{})
	session.Run(context.Background(), WithResponseEndCallback(func() { close(responseEnded) }))
	awaitSignal(t, responseEnded, "the greeting to finish")

	notifications := sink.snapshot()
	if len(notifications) == 0 {
		t.Fatalf("expected notifications")
	}
	assertStatus(t, notifications[0], notify.StatusConnected, "")
	assertLog(t, notifications[1], "LLM streaming response...")
	assertTranscript(t, notifications[2], notify.RoleAssistant, "Hello! Please ", false, 1)
	assertTranscript(t, notifications[3], notify.RoleAssistant, "Hello! Please upload a document.", false, 1)
	assertTranscript(t, notifications[4], notify.RoleAssistant, "Hello! Please upload a document.", true, 1)
	assertLog(t, notifications[5], "LLM complete: 32 chars")
	assertLog(t, notifications[6], "Sending to TTS...")

	history := session.History()
	if len(history) != 2 {
		t.Fatalf("expected the greeting exchange in history, got %d turns", len(history))
	}
	if history[0].Role != llms.TurnRoleUser || history[0].Content != GreetingPromptWithoutDocument {
		t.Fatalf("expected the greeting prompt as the first turn, got %q", history[0].Content)
	}
	if history[1].Content != "Hello! Please upload a document." {
		t.Fatalf("expected the greeting response in history, got %q", history[1].Content)
	}

	calls := llmClient.recordedCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 llm call, got %d", len(calls))
	}
	if calls[0].Instructions != SystemPromptWithoutDocument {
		t.Fatalf("expected the no-document instructions, got %q", calls[0].Instructions)
	}
}

func TestSessionWithDocumentAdjustsGreetingAndInstructions(t *testing.T) {
	llmClient := &fakeLLM{streams: []llms.Stream{contentStream("Hi! Ask me about the report.")}}
	session := NewSession(
		WithStreamingLLM(llmClient),
		WithDocument(documents.Reference{Title: "annual-report.pdf"}),
	)
	defer session.Close()

	responseEnded := make(chan struct{})
	session.Run(context.Background(), WithResponseEndCallback(func() { close(responseEnded) }))
	awaitSignal(t, responseEnded, "the greeting to finish")

	history := session.History()
	if len(history) != 2 {
		t.Fatalf("expected the greeting exchange in history, got %d turns", len(history))
	}
	expectedPrompt := "I've uploaded a document called 'annual-report.pdf'. Greet me briefly and let me know you're ready to answer questions about it."
	if history[0].Content != expectedPrompt {
		t.Fatalf("expected the document greeting prompt, got %q", history[0].Content)
	}

	calls := llmClient.recordedCalls()
	if calls[0].Instructions != SystemPromptWithDocument {
		t.Fatalf("expected the document instructions, got %q", calls[0].Instructions)
	}
}

func TestSessionSendPromptFlowsAsFinalTranscript(t *testing.T) {
	llmClient := &fakeLLM{streams: []llms.Stream{
		contentStream("Hello!"),
		contentStream("It is about the sea."),
	}}
	sink := &concurrentSink{}
	session := NewSession(WithStreamingLLM(llmClient), WithNotificationSink(sink))
	defer session.Close()

	var transcriptions atomic.Int32
	responseEnded := make(chan struct{}, 2)
	session.Run(context.Background(),
		WithTranscriptionCallback(func(string) { transcriptions.Add(1) }),
		WithResponseEndCallback(func() { responseEnded <- struct{}{} }),
	)
	awaitSignal(t, responseEnded, "the greeting to finish")

	session.SendPrompt("What is this book about?")
	awaitSignal(t, responseEnded, "the answer to finish")

	if count := transcriptions.Load(); count != 1 {
		t.Fatalf("expected 1 transcription callback, got %d", count)
	}

	var userTranscript *notify.TranscriptNotification
	for _, notification := range sink.snapshot() {
		if transcript, ok := notification.(notify.TranscriptNotification); ok && transcript.Role == notify.RoleUser {
			userTranscript = &transcript
			break
		}
	}
	if userTranscript == nil {
		t.Fatalf("expected a user transcript notification")
	}
	if userTranscript.Text != "What is this book about?" || !userTranscript.Final || userTranscript.MessageID != 1 {
		t.Fatalf("unexpected user transcript: %+v", userTranscript)
	}

	history := session.History()
	if len(history) != 4 {
		t.Fatalf("expected 4 turns in history, got %d", len(history))
	}
	if history[2].Content != "What is this book about?" {
		t.Fatalf("expected the typed prompt in history, got %q", history[2].Content)
	}
	if history[3].Content != "It is about the sea." {
		t.Fatalf("expected the answer in history, got %q", history[3].Content)
	}

	calls := llmClient.recordedCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 llm calls, got %d", len(calls))
	}
	// The second call carries the greeting exchange plus the new prompt.
	if len(calls[1].Turns) != 4 {
		t.Fatalf("expected 4 turns in the second call, got %d", len(calls[1].Turns))
	}
	if calls[1].Turns[2].Content != "What is this book about?" {
		t.Fatalf("expected the prompt as the last user turn, got %q", calls[1].Turns[2].Content)
	}
}

func TestSessionResolvesToolCallsBeforeAnswering(t *testing.T) {
	searchTool := llms.NewTool("search_web", "Search the web.",
		map[string]llms.ParameterBase{
			"query": {Type: "string", Description: "The search query"},
		},
		func(arguments struct {
			Query string `json:"query"`
		}) (string, error) {
			return "Result for " + arguments.Query, nil
		},
	).WithRequired("query")

	llmClient := &fakeLLM{streams: []llms.Stream{
		contentStream("Hello!"),
		fakeStream{chunks: []llms.StreamChunk{
			fakeToolCallChunk{toolCall: llms.ToolCall{
				ID:        "call-1",
				Name:      "search_web",
				Arguments: `{"query":"sea levels"}`,
			}},
		}},
		contentStream("Sea levels are rising."),
	}}
	session := NewSession(WithStreamingLLM(llmClient), WithTools(searchTool))
	defer session.Close()

	responseEnded := make(chan struct{}, 2)
	session.Run(context.Background(), WithResponseEndCallback(func() { responseEnded <- struct{}{} }))
	awaitSignal(t, responseEnded, "the greeting to finish")

	session.SendPrompt("What about sea levels today?")
	awaitSignal(t, responseEnded, "the answer to finish")

	history := session.History()
	if len(history) != 4 {
		t.Fatalf("expected 4 turns in history, got %d", len(history))
	}
	assistantTurn := history[3]
	if assistantTurn.Content != "Sea levels are rising." {
		t.Fatalf("expected the final answer, got %q", assistantTurn.Content)
	}
	if len(assistantTurn.ToolCalls) != 1 {
		t.Fatalf("expected 1 resolved tool call, got %d", len(assistantTurn.ToolCalls))
	}
	toolCall := assistantTurn.ToolCalls[0]
	if toolCall.Name != "search_web" || toolCall.Response != "Result for sea levels" {
		t.Fatalf("unexpected tool call result: %+v", toolCall)
	}

	calls := llmClient.recordedCalls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 llm calls, got %d", len(calls))
	}
	// The follow-up call carries the pending tool call on the assistant turn.
	followUpTurns := calls[2].Turns
	lastTurn := followUpTurns[len(followUpTurns)-1]
	if lastTurn.Role != llms.TurnRoleAssistant || len(lastTurn.ToolCalls) != 1 {
		t.Fatalf("expected the assistant turn with the tool call, got %+v", lastTurn)
	}
}

func TestSessionWithWebSearcherRegistersTool(t *testing.T) {
	session := NewSession(WithWebSearcher(nil))
	defer session.Close()

	tools := session.llm.availableTools()
	if len(tools) != 1 || tools[0].Name != "search_web" {
		t.Fatalf("expected the search tool registered, got %+v", tools)
	}

	// Without a searcher the tool answers with the configuration error.
	response, err := tools[0].Execute(`{"query":"anything"}`)
	if err != nil {
		t.Fatalf("failed to execute tool: %s", err)
	}
	if response != "Search error: Web search is not configured" {
		t.Fatalf("unexpected tool response: %q", response)
	}
}

type blockingStream struct {
	firstChunk string
	release    chan struct{}
}

func (s blockingStream) Chunks(context.Context) func(func(llms.StreamChunk, error) bool) {
	return func(yield func(llms.StreamChunk, error) bool) {
		if !yield(fakeContentChunk{content: s.firstChunk}, nil) {
			return
		}
		<-s.release
		yield(fakeContentChunk{content: " never spoken"}, nil)
	}
}

func TestSessionInterruptCancelsActiveTurn(t *testing.T) {
	release := make(chan struct{})
	llmClient := &fakeLLM{streams: []llms.Stream{
		contentStream("Hello!"),
		blockingStream{firstChunk: "Let me think", release: release},
	}}
	session := NewSession(WithStreamingLLM(llmClient))
	defer session.Close()

	var cancellations atomic.Int32
	firstChunk := make(chan struct{})
	responseEnded := make(chan struct{}, 2)
	session.Run(context.Background(),
		WithResponseCallback(func(response string) {
			if response == "Let me think" {
				close(firstChunk)
			}
		}),
		WithCancellationCallback(func() { cancellations.Add(1) }),
		WithResponseEndCallback(func() { responseEnded <- struct{}{} }),
	)
	awaitSignal(t, responseEnded, "the greeting to finish")

	session.SendPrompt("Tell me everything.")
	awaitSignal(t, firstChunk, "the first response chunk")

	session.Interrupt()
	close(release)
	time.Sleep(50 * time.Millisecond)

	if count := cancellations.Load(); count != 1 {
		t.Fatalf("expected 1 cancellation callback, got %d", count)
	}
	if history := session.History(); len(history) != 2 {
		t.Fatalf("expected the cancelled turn kept out of history, got %d turns", len(history))
	}
}

func TestSessionCloseStopsEventFlow(t *testing.T) {
	llmClient := &fakeLLM{streams: []llms.Stream{contentStream("Hello!")}}
	session := NewSession(WithStreamingLLM(llmClient))

	responseEnded := make(chan struct{})
	session.Run(context.Background(), WithResponseEndCallback(func() { close(responseEnded) }))
	awaitSignal(t, responseEnded, "the greeting to finish")

	session.Close()
	session.AwaitDone()

	// Input after close is dropped instead of queued.
	session.SendPrompt("anyone there?")
	time.Sleep(50 * time.Millisecond)
	if history := session.History(); len(history) != 2 {
		t.Fatalf("expected no turns after close, got %d", len(history))
	}
}

func TestSessionContextCancellationClosesSession(t *testing.T) {
	llmClient := &fakeLLM{streams: []llms.Stream{contentStream("Hello!")}}
	session := NewSession(WithStreamingLLM(llmClient))

	ctx, cancel := context.WithCancel(context.Background())
	responseEnded := make(chan struct{})
	session.Run(ctx, WithResponseEndCallback(func() { close(responseEnded) }))
	awaitSignal(t, responseEnded, "the greeting to finish")

	cancel()
	session.AwaitDone()

	if session.player.CanIngest() {
		t.Fatalf("expected the session closed after context cancellation")
	}
}
