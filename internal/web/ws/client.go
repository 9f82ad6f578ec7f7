package ws

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/stonegame/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Time allowed to read the next pong; must exceed pingPeriod
	pongWait = 2 * pingPeriod

	// Largest frame accepted from a client
	maxMessageSize = 4096

	// Default buffer size for outgoing messages
	sendBufferSize = 64
)

// IntentSink accepts decoded client intents
type IntentSink interface {
	Submit(ctx context.Context, intent model.Intent) error
}

// Client is one live WebSocket connection
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	id          model.ConnID
	send        chan []byte
	connectedAt time.Time
	logger      *slog.Logger
}

// NewClient creates a client for an upgraded connection
func NewClient(hub *Hub, conn *websocket.Conn, id model.ConnID, bufferSize int) *Client {
	if bufferSize <= 0 {
		bufferSize = sendBufferSize
	}
	return &Client{
		hub:         hub,
		conn:        conn,
		id:          id,
		send:        make(chan []byte, bufferSize),
		connectedAt: time.Now(),
		logger:      hub.logger.With(slog.String("conn", string(id))),
	}
}

// ID returns the server-assigned connection id
func (c *Client) ID() model.ConnID {
	return c.id
}

// readPump decodes frames into intents until the connection fails.
// Malformed frames are logged and skipped.
func (c *Client) readPump(ctx context.Context, sink IntentSink) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ws read failed", slog.Any("error", err))
			}
			return
		}

		intent, err := DecodeIntent(c.id, data)
		if err != nil {
			c.logger.Debug("ws frame skipped", slog.Any("error", err))
			continue
		}

		if err := sink.Submit(ctx, intent); err != nil {
			c.logger.Warn("ws intent not accepted", slog.Any("error", err))
			return
		}
	}
}

// writePump drains the send channel and keeps the connection alive with pings.
// It owns closing the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
