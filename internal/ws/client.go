package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/simon-kyger/crewbattle/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Ping period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size
	maxMessageSize = 4096

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one live websocket connection
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient wraps an upgraded websocket connection
func NewClient(conn *websocket.Conn, logger *slog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger.With(slog.String("conn", id)),
	}
}

// ID uniquely identifies the connection
func (c *Client) ID() string {
	return c.id
}

// Send enqueues an event frame for the write pump. A full buffer drops
// the frame rather than blocking the state machine.
func (c *Client) Send(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		c.logger.Error("failed to marshal event payload",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}
	frame, err := json.Marshal(protocol.Envelope{Event: event, Data: payload})
	if err != nil {
		c.logger.Error("failed to marshal envelope",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
		c.logger.Warn("frame dropped - client buffer full",
			slog.String("event", event))
	}
}

// Close ends the write pump. Safe to call more than once; late Sends
// become no-ops rather than panics.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump reads envelopes off the connection and hands them to the
// handler until the peer goes away. It runs on the connection's own
// goroutine, so slow handlers (credential lookups) stall only this
// client.
func (c *Client) readPump(handle func(protocol.Envelope)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("unexpected close", slog.Any("error", err))
			}
			return
		}

		var env protocol.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.logger.Debug("malformed frame", slog.Any("error", err))
			continue
		}
		handle(env)
	}
}

// writePump drains the send channel to the connection and keeps the
// peer alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
