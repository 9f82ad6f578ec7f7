package session

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/stonegame/internal/model"
	"github.com/mcoot/stonegame/internal/services/rules"
)

// outcome is how a match ended
type outcome struct {
	winner model.Color // ignored on a draw
	draw   bool
	reason string
}

// Move plays a stone for the participant whose name is bound to the active color
func (m *Manager) Move(conn model.ConnID, roomID model.RoomID, pos model.Position) error {
	room, color, err := m.activeColor(conn, roomID)
	if err != nil {
		return err
	}
	match := room.Match

	if color != match.CurrentTurn {
		m.rejectMove(conn, model.ReasonNotYourTurn)
		return model.ErrNotYourTurn
	}

	result := rules.ApplyMove(match.Board, color, pos)
	if !result.Accepted() {
		m.rejectMove(conn, result.Outcome.Reason())
		return fmt.Errorf("%w: %s", model.ErrIllegalMove, result.Outcome.Reason())
	}

	opponent := color.Opponent()
	match.Board = result.Board
	match.Captured[color] += result.Captured
	match.MoveBudget[color]--
	match.MovesPlayed++
	match.Passes[color] = 0
	match.CurrentTurn = opponent

	m.logger.Debug("move played",
		slog.String("room", string(room.ID)),
		slog.String("color", color.String()),
		slog.Int("row", pos.Row),
		slog.Int("col", pos.Col),
		slog.Int("captured", result.Captured))

	if result.Captured > 0 && match.StoneCount(opponent) == 0 {
		m.finish(room, outcome{winner: color, reason: model.ReasonTotalCapture})
		return nil
	}

	if match.BudgetExhausted() {
		m.finish(room, scoreByStones(&match.Board))
		return nil
	}

	m.broadcastMatch(room)
	return nil
}

// Pass gives up the turn. Passes are cumulative; reaching the limit forfeits the match.
// Out-of-turn passes are dropped silently.
func (m *Manager) Pass(conn model.ConnID, roomID model.RoomID) error {
	room, color, err := m.activeColor(conn, roomID)
	if err != nil {
		return err
	}
	match := room.Match

	if color != match.CurrentTurn {
		return model.ErrNotYourTurn
	}

	match.Passes[color]++
	if match.Passes[color] >= model.PassForfeitLimit {
		m.finish(room, outcome{winner: color.Opponent(), reason: model.ReasonPassedFive})
		return nil
	}

	match.CurrentTurn = color.Opponent()
	m.broadcastMatch(room)
	return nil
}

// Surrender concedes the match to the opponent regardless of whose turn it is
func (m *Manager) Surrender(conn model.ConnID, roomID model.RoomID) error {
	room, color, err := m.activeColor(conn, roomID)
	if err != nil {
		return err
	}

	m.finish(room, outcome{winner: color.Opponent(), reason: model.ReasonSurrendered})
	return nil
}

// activeColor resolves the room's match and the color bound to the actor's display name
func (m *Manager) activeColor(conn model.ConnID, roomID model.RoomID) (*model.Room, model.Color, error) {
	room, ok := m.rooms[roomID]
	if !ok {
		return nil, 0, model.ErrRoomNotFound
	}
	if room.State() != model.RoomStateActive || room.Match == nil {
		return nil, 0, model.ErrInvalidTransition
	}

	p, ok := m.participants.Lookup(conn)
	if !ok {
		return nil, 0, model.ErrParticipantNotFound
	}
	color, ok := room.Match.ColorOf(p.Name)
	if !ok {
		return nil, 0, model.ErrNotInMatch
	}
	return room, color, nil
}

func (m *Manager) rejectMove(conn model.ConnID, reason string) {
	m.notifier.Send(conn, model.Event{
		Type:    model.EventInvalidMove,
		Payload: model.InvalidMovePayload{Reason: reason},
	})
}

func (m *Manager) broadcastMatch(room *model.Room) {
	m.sendToMembers(room, model.Event{Type: model.EventGameState, Payload: room.Match.Clone()})
}

// scoreByStones ends a match on the move budget: more stones on the board wins
func scoreByStones(board *model.Board) outcome {
	a, b := rules.Score(board)
	switch {
	case a > b:
		return outcome{winner: model.ColorA, reason: model.ReasonMoveLimit}
	case b > a:
		return outcome{winner: model.ColorB, reason: model.ReasonMoveLimit}
	default:
		return outcome{draw: true, reason: model.ReasonMoveLimitDraw}
	}
}

// finish announces the result to both seats, archives it and deletes the room
func (m *Manager) finish(room *model.Room, o outcome) {
	match := room.Match

	payload := model.GameOverPayload{Reason: o.reason}
	result := model.MatchResult{
		RoomID:         room.ID,
		HostName:       room.HostName,
		ChallengerName: room.ChallengerName,
		Draw:           o.draw,
		Reason:         o.reason,
		Captured:       map[model.Color]int{model.ColorA: match.Captured[model.ColorA], model.ColorB: match.Captured[model.ColorB]},
		Stones:         map[model.Color]int{model.ColorA: match.StoneCount(model.ColorA), model.ColorB: match.StoneCount(model.ColorB)},
		MovesPlayed:    match.MovesPlayed,
		StartedAt:      match.StartedAt,
		EndedAt:        m.clock.Now(),
	}
	if !o.draw {
		payload.WinnerName = match.NameOf(o.winner)
		result.WinnerName = payload.WinnerName
		result.LoserName = match.NameOf(o.winner.Opponent())
	}

	m.logger.Info("match finished",
		slog.String("room", string(room.ID)),
		slog.String("winner", result.WinnerName),
		slog.Bool("draw", o.draw),
		slog.String("reason", o.reason),
		slog.Int("moves", match.MovesPlayed),
		slog.Duration("duration", m.clock.Since(match.StartedAt)))

	m.sendToMembers(room, model.Event{Type: model.EventGameOver, Payload: payload})
	m.recorder.Record(result)
	m.deleteRoom(room)
	m.broadcastRoomList()
}
