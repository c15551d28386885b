package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/recorder"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local tool
	},
}

// Message is what monitor clients receive for each captured event. Event
// holds the event in its persisted shape.
type Message struct {
	Session string          `json:"session"`
	Kind    action.Kind     `json:"kind"`
	Event   json.RawMessage `json:"event"`
}

// NewMessage converts a recorder event. It reports false for events that
// have no persisted form, such as keys without a neutral name.
func NewMessage(ev recorder.Event) (Message, bool) {
	var (
		raw json.RawMessage
		ok  bool
	)
	switch {
	case ev.Key != nil:
		raw, ok = action.EncodeKeyEv(*ev.Key)
	case ev.Mouse != nil:
		raw, ok = action.EncodeMouseEv(*ev.Mouse)
	}
	if !ok {
		return Message{}, false
	}
	return Message{Session: ev.Session, Kind: ev.Kind, Event: raw}, true
}

// Hub manages WebSocket clients and broadcasts captured events.
type Hub struct {
	logger *slog.Logger

	// mu also serializes writes; a gorilla conn allows one writer at a time.
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub creates a new WebSocket hub. A nil logger uses slog.Default().
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleWebSocket upgrades the HTTP connection and registers the client.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.logger.Debug("monitor client connected", "remote", r.RemoteAddr)

	// Read loop: keeps the connection alive and notices disconnects.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// Broadcast sends msg to all connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("websocket marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("websocket write failed", "error", err)
			conn.Close()
			// The read goroutine removes it.
		}
	}
}

// Observer adapts the hub to a recorder observer.
func (h *Hub) Observer() recorder.Observer {
	return func(ev recorder.Event) {
		if msg, ok := NewMessage(ev); ok {
			h.Broadcast(msg)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
}
