package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"go-wingo/internal/lib/logger/sl"
)

type Message struct {
	Channel string                 `json:"channel"`
	Event   string                 `json:"event"`
	Data    map[string]interface{} `json:"data"`
}

type Subscription struct {
	Conn    *websocket.Conn
	Channel string
}

// Hub fans messages out to every connection subscribed to a channel. The
// engine publishes into it as a regular client; presentation clients
// subscribe and render whatever arrives.
type Hub struct {
	channels  map[string]map[*websocket.Conn]bool
	last      map[string]Message
	Broadcast chan Message
	Subscribe chan Subscription
	leave     chan *websocket.Conn
	mutex     sync.RWMutex
	log       *slog.Logger
}

func NewHub(
	log *slog.Logger,
) *Hub {
	return &Hub{
		channels:  make(map[string]map[*websocket.Conn]bool),
		last:      make(map[string]Message),
		Broadcast: make(chan Message),
		Subscribe: make(chan Subscription),
		leave:     make(chan *websocket.Conn),
		log:       log,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (hub *Hub) run() {
	for {
		select {
		case sub := <-hub.Subscribe:
			hub.subscribe(sub)
		case conn := <-hub.leave:
			hub.drop(conn)
		case message := <-hub.Broadcast:
			hub.broadcast(message)
		}
	}
}

func (hub *Hub) subscribe(sub Subscription) {
	hub.mutex.Lock()

	if hub.channels[sub.Channel] == nil {
		hub.channels[sub.Channel] = make(map[*websocket.Conn]bool)
	}
	hub.channels[sub.Channel][sub.Conn] = true

	replay, hasReplay := hub.last[sub.Channel]

	hub.mutex.Unlock()

	hub.log.Info("client subscribed", sl.String("channel", sub.Channel))

	// A fresh client gets the latest state right away instead of waiting
	// for the next broadcast.
	if hasReplay {
		if data, err := json.Marshal(replay); err == nil {
			if err = sub.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				hub.log.Error("failed to replay last message", sl.Err(err))
			}
		}
	}
}

func (hub *Hub) drop(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for channel, receivers := range hub.channels {
		if receivers[conn] {
			delete(receivers, conn)

			hub.log.Info("client dropped", sl.String("channel", channel))
		}
	}
}

func (hub *Hub) broadcast(message Message) {
	hub.mutex.Lock()
	hub.last[message.Channel] = message

	receivers, ok := hub.channels[message.Channel]
	if !ok || len(receivers) == 0 {
		hub.mutex.Unlock()

		return
	}

	conns := make([]*websocket.Conn, 0, len(receivers))
	for conn := range receivers {
		conns = append(conns, conn)
	}
	hub.mutex.Unlock()

	data, err := json.Marshal(message)
	if err != nil {
		hub.log.Error("failed to marshal message", sl.Err(err))

		return
	}

	hub.log.Debug("broadcasting message",
		sl.String("channel", message.Channel),
		sl.String("event", message.Event))

	for _, conn := range conns {
		if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
			hub.log.Error("failed to write message", sl.Err(err))
		}
	}
}

func (hub *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.Error("failed to upgrade connection", sl.Err(err))

		return
	}

	defer func(ws *websocket.Conn) {
		hub.leave <- ws

		if err = ws.Close(); err != nil {
			hub.log.Error("failed to close connection", sl.Err(err))
		}
	}(ws)

	if room := r.URL.Query().Get("room"); room != "" {
		hub.Subscribe <- Subscription{Conn: ws, Channel: room}
	}

	for {
		var message Message

		_, p, err := ws.ReadMessage()
		if err != nil {
			return
		}

		if err = json.Unmarshal(p, &message); err != nil {
			hub.log.Error("failed to unmarshal message", sl.Err(err))

			continue
		}

		hub.log.Debug("incoming message",
			sl.String("channel", message.Channel),
			sl.String("event", message.Event))

		if message.Event == "subscribe" {
			hub.Subscribe <- Subscription{Conn: ws, Channel: message.Channel}

			continue
		}

		hub.Broadcast <- message
	}
}

func (hub *Hub) RunServer() {
	go hub.run()
}
