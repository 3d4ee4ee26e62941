package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is one message pushed to connected UI clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// EventHub fans events out to the connected websocket clients. The app is
// single-user, so there is no per-user routing: every client sees every
// event.
type EventHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *EventHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *EventHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Publish best-effort delivers ev to every client. A failed write drops that
// client; publishing must never block or fail the mutation that triggered it.
func (h *EventHub) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.Unregister(c)
		}
	}
}
