package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Client represents a single WebSocket connection. Its uuid is the transient
// connection id announced to the peer on connect; the logical identity
// arrives later via an identity.bind event.
type Client struct {
	router *Router
	conn   *websocket.Conn
	id     uuid.UUID

	mu       sync.RWMutex
	identity string

	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(router *Router, conn *websocket.Conn) *Client {
	return &Client{
		router: router,
		conn:   conn,
		id:     uuid.New(),
		send:   make(chan []byte, sendBufSize),
		done:   make(chan struct{}),
	}
}

// ID is the transient connection id.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// Identity returns the bound logical identity, or "" before identity.bind.
func (c *Client) Identity() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

func (c *Client) setIdentity(identity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = identity
}

// Enqueue hands data to the write pump without blocking. A full buffer
// counts as a drop.
func (c *Client) Enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// ReadPump reads events from the WebSocket and routes them. On any exit the
// registry entry is unbound, so a dropped connection never leaves a stale
// identity mapping behind.
func (c *Client) ReadPump() {
	defer func() {
		c.router.registry.Unbind(c)
		c.close()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("ws: connection %s disconnected", c.id)
			} else {
				log.Printf("ws: read error from %s: %v", c.id, err)
			}
			return
		}

		c.router.Route(c, &event)
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message := <-c.send:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Printf("ws: write error to %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				log.Printf("ws: ping error to %s: %v", c.id, err)
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	c.Enqueue(data)
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	c.Enqueue(data)
}
