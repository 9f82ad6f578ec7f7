// Package rules implements move legality and capture resolution.
// Every function takes boards by value or read-only pointer and never
// mutates the caller's board.
package rules

import "github.com/mcoot/stonegame/internal/model"

// Outcome tags the result of ApplyMove
type Outcome int

const (
	Accepted Outcome = iota
	RejectedOccupied
	RejectedSuicide
	RejectedOffBoard
)

// Reason returns the player-facing text for a rejected outcome
func (o Outcome) Reason() string {
	switch o {
	case RejectedOccupied:
		return "occupied"
	case RejectedSuicide:
		return "suicide move"
	case RejectedOffBoard:
		return "off board"
	default:
		return ""
	}
}

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return o.Reason()
}

// MoveResult is the outcome of placing a stone.
// On rejection Board is the input board, unchanged.
type MoveResult struct {
	Outcome  Outcome
	Board    model.Board
	Captured int
}

// Accepted returns true if the move was legal
func (r MoveResult) Accepted() bool {
	return r.Outcome == Accepted
}

// ApplyMove places a stone of the given color at pos, removes any opposing
// groups left without liberties, and rejects suicide. Ko is not checked.
func ApplyMove(board model.Board, color model.Color, pos model.Position) MoveResult {
	if !pos.InBounds() {
		return MoveResult{Outcome: RejectedOffBoard, Board: board}
	}
	if !board.IsEmpty(pos) {
		return MoveResult{Outcome: RejectedOccupied, Board: board}
	}

	next := board
	next.Set(pos, color.Stone())

	captured := 0
	opponent := color.Opponent().Stone()
	for _, n := range pos.Neighbors() {
		// A group touching pos on two sides is already gone after the first removal
		if next.Get(n) != opponent {
			continue
		}
		if group := GroupAt(&next, n); group.Liberties == 0 {
			captured += removeGroup(&next, group)
		}
	}

	if captured == 0 && GroupAt(&next, pos).Liberties == 0 {
		return MoveResult{Outcome: RejectedSuicide, Board: board}
	}

	return MoveResult{Outcome: Accepted, Board: next, Captured: captured}
}

// Score returns the on-board stone counts for both colors
func Score(board *model.Board) (a, b int) {
	return board.CountStones(model.CellStoneA), board.CountStones(model.CellStoneB)
}
