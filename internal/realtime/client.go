package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
)

// Client is one WebSocket session, joined to its user's room.
type Client struct {
	conn   *websocket.Conn
	hub    *Hub
	userID uint

	// mu guards send and closed: the channel is only written or closed
	// while holding it, so a publisher can never race a teardown.
	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClient(h *Hub, userID uint, conn *websocket.Conn) *Client {
	return &Client{conn: conn, hub: h, userID: userID, send: make(chan []byte, 256)}
}

// relayedMessage is the payload a client attaches to a send_message event.
type relayedMessage struct {
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	Content    string `json:"content"`
}

// readPump relays client-originated send_message events to the receiver's
// room and keeps the connection alive via pongs.
func (c *Client) readPump() {
	defer c.Close()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			continue
		}
		if ev.Event != "send_message" {
			continue
		}
		var msg relayedMessage
		if err := json.Unmarshal(ev.Data, &msg); err != nil {
			continue
		}
		// The sender identity comes from the authenticated session, not the
		// payload.
		msg.SenderID = c.userID
		c.hub.Publish(msg.ReceiverID, "receive_message", msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// trySend queues a message for the write pump. Returns false when the
// session is closed or its buffer is full.
func (c *Client) trySend(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Close leaves the room and tears down the connection. Safe to call more
// than once and concurrently with publishers.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	c.hub.leave(c.userID, c)
	_ = c.conn.Close()
}
