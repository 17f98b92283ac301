package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"

	"guesswho/internal/broadcast"
	"guesswho/internal/events"
)

// Client is a single WebSocket connection. Everything leaving the server for
// this player funnels through Send; the write pump drains it.
type Client struct {
	PlayerID string
	Name     string
	Conn     *websocket.Conn
	Send     chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(playerID, name string, conn *websocket.Conn) *Client {
	return &Client{
		PlayerID: playerID,
		Name:     name,
		Conn:     conn,
		Send:     make(chan []byte, 64),
	}
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection until the context ends or the channel closes.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Enqueue marshals an event onto the send channel. Non-blocking: drops when
// the client cannot keep up.
func (c *Client) Enqueue(ev events.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		// Drop message if channel full
	}
}

// close shuts the send channel exactly once. Forward goroutines still
// running observe the closed flag instead of panicking on a closed channel.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// Forward pumps one broker subscription into the client until the
// subscription closes or the context ends.
func (c *Client) Forward(ctx context.Context, sub *broadcast.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			c.Enqueue(ev)
		}
	}
}

// Hub tracks live connections by player. A player reconnecting displaces the
// previous connection.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Register adds a client, closing any previous connection for the same
// player.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	prev := h.clients[c.PlayerID]
	h.clients[c.PlayerID] = c
	h.mu.Unlock()

	if prev != nil {
		prev.close()
		if prev.Conn != nil {
			prev.Conn.Close(websocket.StatusPolicyViolation, "superseded by a newer connection")
		}
	}
}

// Unregister removes a client and closes its Send channel. A stale client
// (already displaced by a reconnect) is left alone.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	current, ok := h.clients[c.PlayerID]
	if ok && current == c {
		delete(h.clients, c.PlayerID)
	}
	h.mu.Unlock()

	if ok && current == c {
		c.close()
	}
}

// Get returns the live client for a player, or nil.
func (h *Hub) Get(playerID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients[playerID]
}
