package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/stonegame/internal/model"
)

// DefaultOutboundBuffer is the hub's queue of undelivered frames
const DefaultOutboundBuffer = 1024

// delivery is a frame bound for one connection, or for all of them
type delivery struct {
	to      model.ConnID
	all     bool
	message []byte
}

// Hub tracks live connections and fans frames out to them
type Hub struct {
	clients map[model.ConnID]*Client
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	outbound   chan delivery
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a Hub. Call Run to start delivering.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[model.ConnID]*Client),
		logger:     logger.With(slog.String("component", "ws")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan delivery, DefaultOutboundBuffer),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("ws hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client registered",
				slog.String("conn", string(client.id)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.id]; ok && current == client {
				delete(h.clients, client.id)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("ws client unregistered",
					slog.String("conn", string(client.id)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case d := <-h.outbound:
			h.deliver(d)

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for id, client := range h.clients {
				close(client.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			h.logger.Info("ws hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

func (h *Hub) deliver(d delivery) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !d.all {
		client, ok := h.clients[d.to]
		if !ok {
			h.logger.Debug("ws message for unknown connection dropped", slog.String("conn", string(d.to)))
			return
		}
		h.offer(client, d.message)
		return
	}

	droppedCount := 0
	for _, client := range h.clients {
		if !h.offer(client, d.message) {
			droppedCount++
		}
	}
	if droppedCount > 0 {
		h.logger.Warn("ws broadcast partial failure",
			slog.Int("sent", len(h.clients)-droppedCount),
			slog.Int("dropped", droppedCount))
	}
}

// offer queues a frame for a client without blocking
func (h *Hub) offer(client *Client, message []byte) bool {
	select {
	case client.send <- message:
		return true
	default:
		h.logger.Warn("ws message dropped - client buffer full",
			slog.String("conn", string(client.id)))
		return false
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub and closes its send channel
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send delivers an event to a single connection
func (h *Hub) Send(conn model.ConnID, event model.Event) {
	h.enqueue(event, delivery{to: conn})
}

// Broadcast delivers an event to every connection
func (h *Hub) Broadcast(event model.Event) {
	h.enqueue(event, delivery{all: true})
}

func (h *Hub) enqueue(event model.Event, d delivery) {
	message, err := EncodeEvent(event)
	if err != nil {
		h.logger.Error("ws failed to encode event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}
	d.message = message

	select {
	case h.outbound <- d:
	default:
		h.logger.Warn("ws event dropped - hub buffer full", slog.String("type", string(event.Type)))
	}
}

// Close shuts down the hub and disconnects every client
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
