package model

import "time"

// ConnID is the opaque handle of a live transport connection
type ConnID string

// Participant is an online connection with a display name
type Participant struct {
	Conn        ConnID
	Name        string
	CurrentRoom *RoomID // nil when in the lobby
	OnlineAt    time.Time
}

// InRoom returns true if the participant holds a seat somewhere
func (p *Participant) InRoom() bool {
	return p.CurrentRoom != nil
}
