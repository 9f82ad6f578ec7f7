package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/stonegame/internal/api/handler"
	"github.com/mcoot/stonegame/internal/api/middleware"
	"github.com/mcoot/stonegame/internal/api/response"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Lobby     handler.LobbyReader
	Results   handler.ResultReader
	WebSocket http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)
	r.Use(middleware.RequestID())

	// Create handlers
	lobbyHandler := handler.NewLobbyHandler(cfg.Lobby)
	resultsHandler := handler.NewResultsHandler(cfg.Results)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Lobby views
	api.HandleFunc("/rooms", lobbyHandler.ListRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", lobbyHandler.GetRoom).Methods(http.MethodGet)
	api.HandleFunc("/players", lobbyHandler.ListPlayers).Methods(http.MethodGet)

	// Match archive
	api.HandleFunc("/results", resultsHandler.List).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Game traffic
	if cfg.WebSocket != nil {
		r.Handle("/ws", recoveryMiddleware(loggingMiddleware(cfg.WebSocket))).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Health{Status: "ok"})
}
