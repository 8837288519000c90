// Package realtime implements the live delivery channel for direct
// messages: a WebSocket hub with one room per user. Delivery is best-effort;
// the database row written before publishing is authoritative.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is the envelope exchanged on the channel.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Hub tracks connected clients grouped into per-user rooms.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]bool
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*Client]bool)}
}

func (h *Hub) join(userID uint, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*Client]bool)
	}
	h.rooms[userID][c] = true
}

func (h *Hub) leave(userID uint, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.rooms[userID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.rooms, userID)
		}
	}
}

// Publish sends an event to every session in a user's room. Slow consumers
// are disconnected rather than blocked on; an empty room is not an error.
func (h *Hub) Publish(userID uint, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("realtime: failed to marshal %s payload: %v", event, err)
		return
	}
	msg, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("realtime: failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	conns := make([]*Client, 0, len(h.rooms[userID]))
	for c := range h.rooms[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if !c.trySend(msg) {
			go c.Close()
		}
	}
}
