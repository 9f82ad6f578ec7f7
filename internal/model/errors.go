package model

import "errors"

// Common errors used across the application
var (
	// Participant errors
	ErrParticipantNotFound = errors.New("participant not found")

	// Room errors
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room already has a challenger")
	ErrAlreadyInRoom     = errors.New("participant is already in a room")
	ErrNotInRoom         = errors.New("participant is not in this room")
	ErrNotHost           = errors.New("participant is not the host")
	ErrNotChallenger     = errors.New("participant is not the challenger")
	ErrInvalidTransition = errors.New("room is not in the required state")

	// Match errors
	ErrNotInMatch    = errors.New("participant name is not bound to a color")
	ErrNotYourTurn   = errors.New("not this participant's turn")
	ErrIllegalMove   = errors.New("illegal move")
	ErrUnknownIntent = errors.New("unknown intent")
)
