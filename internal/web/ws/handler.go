package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mcoot/stonegame/internal/model"
)

// HandlerConfig holds WebSocket endpoint settings
type HandlerConfig struct {
	// AllowedOrigins restricts browser origins; empty allows any
	AllowedOrigins []string
	// SendBufferSize is the per-client outbound queue length
	SendBufferSize int
}

// Handler upgrades requests and runs a client per connection
type Handler struct {
	hub        *Hub
	sink       IntentSink
	upgrader   websocket.Upgrader
	sendBuffer int
	logger     *slog.Logger
}

// NewHandler creates the /ws endpoint
func NewHandler(hub *Hub, sink IntentSink, cfg HandlerConfig, logger *slog.Logger) *Handler {
	return &Handler{
		hub:  hub,
		sink: sink,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		sendBuffer: cfg.SendBufferSize,
		logger:     logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP upgrades the connection, announces its id and pumps frames until it closes
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error
		h.logger.Debug("ws upgrade failed", slog.Any("error", err))
		return
	}

	id := model.ConnID(uuid.NewString())
	client := NewClient(h.hub, conn, id, h.sendBuffer)

	// Send initial connection event
	connected, err := EncodeEvent(model.Event{
		Type:    model.EventConnected,
		Payload: model.ConnectedPayload{ConnectionID: id},
	})
	if err == nil {
		client.send <- connected
	}

	h.hub.Register(client)
	go client.writePump()

	// Intents outlive the HTTP request once hijacked
	ctx := context.Background()
	client.readPump(ctx, h.sink)

	if err := h.sink.Submit(ctx, model.Intent{Type: model.IntentDisconnect, Conn: id}); err != nil {
		h.logger.Debug("ws disconnect not delivered", slog.String("conn", string(id)), slog.Any("error", err))
	}
	h.hub.Unregister(client)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// non-browser clients such as stonectl
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
