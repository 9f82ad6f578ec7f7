package model

// IntentType identifies an inbound request from a client
type IntentType string

const (
	IntentOnline     IntentType = "player_online"
	IntentListRooms  IntentType = "get_rooms"
	IntentCreateRoom IntentType = "create_room"
	IntentJoinRoom   IntentType = "join_room"
	IntentReady      IntentType = "player_ready"
	IntentStart      IntentType = "start_game"
	IntentMove       IntentType = "make_move"
	IntentPass       IntentType = "pass_turn"
	IntentSurrender  IntentType = "surrender"
	IntentLeave      IntentType = "leave_room"

	// IntentDisconnect is raised by the transport, never by a client
	IntentDisconnect IntentType = "disconnect"
)

// Intent is a decoded client request. Fields unused by a type are zero.
type Intent struct {
	Type   IntentType
	Conn   ConnID
	Name   string // display name for online, host name for create, player name for join
	Title  string
	RoomID RoomID
	Pos    Position
}
