// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size. The protocol only carries small
	// JSON envelopes; anything larger is a misbehaving client.
	maxMessageSize = 4096

	// Per-client outbound buffer. A client that cannot drain this many
	// pending frames is disconnected rather than allowed to stall the hub.
	sendBufferSize = 64
)

type role int

const (
	roleNone role = iota
	roleHost
	roleAudience
)

// client is one WebSocket connection. A connection starts unbound and
// becomes a host or audience member of exactly one session on its first
// host:subscribe or successful audience:join.
type client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ip   string

	// Closed exactly once when the connection is torn down. The send
	// channel itself is never closed so concurrent enqueues stay safe.
	done      chan struct{}
	closeOnce sync.Once

	// Set once by the read pump, read by the hub under its lock.
	sessionID string
	role      role
	clientAck string
}

// close tears the connection down. Safe to call from any goroutine,
// any number of times.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// enqueue marshals v and queues it for the write pump. Returns false
// when the buffer is full, in which case the caller should drop the
// client.
func (c *client) enqueue(v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal outbound message", "error", err, "conn", c.id)
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// readPump reads inbound envelopes and dispatches them until the
// connection drops.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Info("websocket closed unexpectedly", "error", err, "conn", c.id)
			}
			return
		}
		c.hub.handleMessage(c, data)
	}
}

// writePump drains the send buffer to the connection and keeps the
// peer alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
