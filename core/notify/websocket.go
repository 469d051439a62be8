package notify

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// WebsocketSink pushes notifications to a client over a websocket
// connection as JSON text frames.
type WebsocketSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebsocketSink wraps an established websocket connection. The sink
// serializes writes; the caller retains ownership of reads and of closing
// the connection.
func NewWebsocketSink(conn *websocket.Conn) *WebsocketSink {
	return &WebsocketSink{conn: conn}
}

func (s *WebsocketSink) Send(notification Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("websocket connection closed")
	}

	if err := s.conn.WriteJSON(notification); err != nil {
		return fmt.Errorf("failed to write notification to websocket: %w", err)
	}
	return nil
}

// Close detaches the sink from the connection. Later Sends fail without
// touching the connection.
func (s *WebsocketSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn = nil
}
