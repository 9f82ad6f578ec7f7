package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/stonegame/internal/api/response"
	"github.com/mcoot/stonegame/internal/model"
	"github.com/mcoot/stonegame/internal/services/dispatch"
)

// LobbyReader reads lobby state from the dispatch loop
type LobbyReader interface {
	Snapshot(ctx context.Context) (dispatch.Snapshot, error)
	Room(ctx context.Context, id model.RoomID) (model.Room, error)
}

// LobbyHandler serves read-only views of rooms and online players
type LobbyHandler struct {
	lobby LobbyReader
}

// NewLobbyHandler creates a new lobby handler
func NewLobbyHandler(lobby LobbyReader) *LobbyHandler {
	return &LobbyHandler{lobby: lobby}
}

// ListRooms handles GET /api/v1/rooms
func (h *LobbyHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	snap, err := h.lobby.Snapshot(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.RoomListFromModel(snap.Rooms))
}

// GetRoom handles GET /api/v1/rooms/{id}
func (h *LobbyHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	room, err := h.lobby.Room(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.RoomDetailFromModel(room))
}

// ListPlayers handles GET /api/v1/players
func (h *LobbyHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	snap, err := h.lobby.Snapshot(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	players := snap.Players
	if players == nil {
		players = []string{}
	}
	response.OK(w, response.PlayerList{Players: players, Count: snap.Online})
}
