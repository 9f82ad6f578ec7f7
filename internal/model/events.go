package model

// EventType identifies an outbound message
type EventType string

const (
	// Connection events
	EventConnected     EventType = "connected"
	EventOnlinePlayers EventType = "update_online_players"

	// Lobby events
	EventRoomList        EventType = "update_room_list"
	EventPlayerJoined    EventType = "player_joined"
	EventJoinedRoom      EventType = "joined_room"
	EventOpponentReady   EventType = "opponent_ready"
	EventRedirectToLobby EventType = "redirect_to_lobby"

	// Match events
	EventGameStarted EventType = "game_started"
	EventGameState   EventType = "update_game_state"
	EventInvalidMove EventType = "invalid_move"
	EventGameOver    EventType = "game_over"
)

// Match-over reasons shown to players
const (
	ReasonTotalCapture  = "captured all opponent stones"
	ReasonMoveLimit     = "move limit reached"
	ReasonMoveLimitDraw = "move limit reached, draw"
	ReasonPassedFive    = "opponent passed five times"
	ReasonSurrendered   = "opponent surrendered"
	ReasonOpponentLeft  = "opponent left the game"
	ReasonNotYourTurn   = "not your turn"
)

// Event is a message addressed to one or more connections
type Event struct {
	Type    EventType
	Payload any
}

// ConnectedPayload tells a new connection its server-assigned id
type ConnectedPayload struct {
	ConnectionID ConnID `json:"connectionId"`
}

// InvalidMovePayload explains a rejected move
type InvalidMovePayload struct {
	Reason string `json:"reason"`
}

// GameOverPayload announces the end of a match
type GameOverPayload struct {
	WinnerName string `json:"winnerName"` // empty on a draw
	Reason     string `json:"reason"`
}

// RedirectPayload sends a client back to the lobby view
type RedirectPayload struct{}
