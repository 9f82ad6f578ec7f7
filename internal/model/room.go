package model

import "time"

// RoomID identifies a room; derived from the creating connection
type RoomID string

// RoomIDFor returns the room id owned by the given connection
func RoomIDFor(conn ConnID) RoomID {
	return RoomID("room_" + string(conn))
}

// RoomState is derived from the room's flags
type RoomState string

const (
	RoomStateEmpty   RoomState = "empty"   // host only
	RoomStateWaiting RoomState = "waiting" // challenger joined, not ready
	RoomStateReady   RoomState = "ready"   // challenger ready, match not started
	RoomStateActive  RoomState = "active"  // match in progress
)

// Room is a two-seat table. Terminal rooms are deleted, so there is no terminal state.
type Room struct {
	ID              RoomID    `json:"id"`
	Title           string    `json:"title,omitempty"`
	HostName        string    `json:"host"`
	HostConn        ConnID    `json:"-"`
	ChallengerName  string    `json:"challenger,omitempty"`
	ChallengerConn  ConnID    `json:"-"`
	ChallengerReady bool      `json:"challengerReady"`
	Started         bool      `json:"gameStarted"`
	Match           *Match    `json:"gameState,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// State returns the lifecycle state implied by the room's flags
func (r *Room) State() RoomState {
	switch {
	case r.Started:
		return RoomStateActive
	case r.ChallengerConn == "":
		return RoomStateEmpty
	case !r.ChallengerReady:
		return RoomStateWaiting
	default:
		return RoomStateReady
	}
}

// Members returns the connections seated at the room
func (r *Room) Members() []ConnID {
	members := []ConnID{r.HostConn}
	if r.ChallengerConn != "" {
		members = append(members, r.ChallengerConn)
	}
	return members
}

// IsMember returns true if the connection holds a seat
func (r *Room) IsMember(conn ConnID) bool {
	return conn != "" && (conn == r.HostConn || conn == r.ChallengerConn)
}

// Opposite returns the other seat's connection and name, if occupied
func (r *Room) Opposite(conn ConnID) (ConnID, string, bool) {
	switch conn {
	case r.HostConn:
		if r.ChallengerConn == "" {
			return "", "", false
		}
		return r.ChallengerConn, r.ChallengerName, true
	case r.ChallengerConn:
		return r.HostConn, r.HostName, true
	default:
		return "", "", false
	}
}

// SeatColor returns the color bound to the seat held by conn
func (r *Room) SeatColor(conn ConnID) (Color, bool) {
	switch conn {
	case r.ChallengerConn:
		return ColorA, conn != ""
	case r.HostConn:
		return ColorB, true
	default:
		return 0, false
	}
}

// Summary returns the lobby-facing view of the room
func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:              r.ID,
		Title:           r.Title,
		HostName:        r.HostName,
		ChallengerName:  r.ChallengerName,
		ChallengerReady: r.ChallengerReady,
		Started:         r.Started,
		State:           r.State(),
	}
}

// RoomSummary is a room as shown in the lobby list
type RoomSummary struct {
	ID              RoomID    `json:"id"`
	Title           string    `json:"title,omitempty"`
	HostName        string    `json:"host"`
	ChallengerName  string    `json:"challenger,omitempty"`
	ChallengerReady bool      `json:"challengerReady"`
	Started         bool      `json:"gameStarted"`
	State           RoomState `json:"state"`
}

// Snapshot returns a copy of the room safe to hand to other goroutines
func (r *Room) Snapshot() Room {
	c := *r
	c.Match = r.Match.Clone()
	return c
}
