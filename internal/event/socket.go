package event

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"go-wingo/internal/lib/logger/sl"
)

// SocketEvent publishes into the local ws hub over a client connection.
// Writes are serialized; gorilla connections allow one writer at a time.
type SocketEvent struct {
	log  *slog.Logger
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewSocketEvent(log *slog.Logger, conn *websocket.Conn) *SocketEvent {
	return &SocketEvent{
		log:  log,
		conn: conn,
	}
}

func (s *SocketEvent) TriggerEvent(m Message) error {
	const op = "event.SocketEvent.TriggerEvent"

	msg, err := json.Marshal(m)
	if err != nil {
		s.log.Error("failed to marshal message", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		s.log.Error("failed to trigger event", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
