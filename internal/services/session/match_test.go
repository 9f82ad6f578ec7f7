package session

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/stonegame/internal/model"
)

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

// Helper to start a match and clear the recorded events
func (s *ManagerSuite) startMatch() *model.Match {
	s.roomIn(model.RoomStateActive)
	s.notifier.Reset()
	return s.manager.rooms[hostRoom].Match
}

func (s *ManagerSuite) gameOver(conn model.ConnID) model.GameOverPayload {
	events := s.notifier.SentOfType(conn, model.EventGameOver)
	s.Require().Len(events, 1)
	payload, ok := events[0].Payload.(model.GameOverPayload)
	s.Require().True(ok)
	return payload
}

func (s *ManagerSuite) invalidMoves(conn model.ConnID) []string {
	var reasons []string
	for _, e := range s.notifier.SentOfType(conn, model.EventInvalidMove) {
		reasons = append(reasons, e.Payload.(model.InvalidMovePayload).Reason)
	}
	return reasons
}

func (s *ManagerSuite) TestFirstMoveFromOpeningPosition() {
	match := s.startMatch()

	err := s.manager.Move(challengerConn, hostRoom, pos(7, 7))

	require.NoError(s.T(), err)
	assert.Equal(s.T(), model.CellStoneA, match.Board.Get(pos(7, 7)))
	assert.Equal(s.T(), model.ColorB, match.CurrentTurn)
	assert.Equal(s.T(), model.InitialMoveBudget-1, match.MoveBudget[model.ColorA])
	assert.Equal(s.T(), model.InitialMoveBudget, match.MoveBudget[model.ColorB])
	assert.Equal(s.T(), 1, match.MovesPlayed)

	for _, conn := range []model.ConnID{hostConn, challengerConn} {
		updates := s.notifier.SentOfType(conn, model.EventGameState)
		require.Len(s.T(), updates, 1)
		snapshot := updates[0].Payload.(*model.Match)
		assert.Equal(s.T(), model.ColorB, snapshot.CurrentTurn)
		assert.NotSame(s.T(), match, snapshot)
	}
}

func (s *ManagerSuite) TestMovesAlternate() {
	match := s.startMatch()

	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(0, 0)))
	require.NoError(s.T(), s.manager.Move(hostConn, hostRoom, pos(14, 14)))
	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(0, 1)))

	assert.Equal(s.T(), model.ColorB, match.CurrentTurn)
	assert.Equal(s.T(), 3, match.MovesPlayed)
	assert.Equal(s.T(), model.CellStoneB, match.Board.Get(pos(14, 14)))
}

func (s *ManagerSuite) TestMoveOutOfTurn() {
	match := s.startMatch()
	before := match.Board

	err := s.manager.Move(hostConn, hostRoom, pos(0, 0))

	assert.ErrorIs(s.T(), err, model.ErrNotYourTurn)
	assert.Equal(s.T(), []string{model.ReasonNotYourTurn}, s.invalidMoves(hostConn))
	assert.Empty(s.T(), s.invalidMoves(challengerConn))
	assert.Equal(s.T(), before, match.Board)
	assert.Equal(s.T(), model.ColorA, match.CurrentTurn)
}

func (s *ManagerSuite) TestMoveOntoOccupiedCell() {
	match := s.startMatch()
	before := match.Board

	err := s.manager.Move(challengerConn, hostRoom, pos(7, 6))

	assert.ErrorIs(s.T(), err, model.ErrIllegalMove)
	assert.Equal(s.T(), []string{"occupied"}, s.invalidMoves(challengerConn))
	assert.Empty(s.T(), s.invalidMoves(hostConn))
	assert.Equal(s.T(), before, match.Board)
	assert.Equal(s.T(), model.ColorA, match.CurrentTurn)
	assert.Equal(s.T(), model.InitialMoveBudget, match.MoveBudget[model.ColorA])
	assert.Empty(s.T(), s.notifier.SentOfType(hostConn, model.EventGameState))
}

func (s *ManagerSuite) TestSuicideMove() {
	match := s.startMatch()
	match.Board.Set(pos(0, 1), model.CellStoneB)
	match.Board.Set(pos(1, 0), model.CellStoneB)

	err := s.manager.Move(challengerConn, hostRoom, pos(0, 0))

	assert.ErrorIs(s.T(), err, model.ErrIllegalMove)
	assert.Equal(s.T(), []string{"suicide move"}, s.invalidMoves(challengerConn))
	assert.True(s.T(), match.Board.IsEmpty(pos(0, 0)))
	assert.Equal(s.T(), model.ColorA, match.CurrentTurn)
}

func (s *ManagerSuite) TestOffBoardMove() {
	s.startMatch()

	err := s.manager.Move(challengerConn, hostRoom, pos(15, 3))

	assert.ErrorIs(s.T(), err, model.ErrIllegalMove)
	assert.Equal(s.T(), []string{"off board"}, s.invalidMoves(challengerConn))
}

func (s *ManagerSuite) TestCaptureUpdatesTally() {
	match := s.startMatch()
	match.Board.Set(pos(5, 5), model.CellStoneB)
	match.Board.Set(pos(4, 5), model.CellStoneA)
	match.Board.Set(pos(6, 5), model.CellStoneA)
	match.Board.Set(pos(5, 4), model.CellStoneA)

	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(5, 6)))

	assert.True(s.T(), match.Board.IsEmpty(pos(5, 5)))
	assert.Equal(s.T(), 1, match.Captured[model.ColorA])
	assert.Equal(s.T(), 0, match.Captured[model.ColorB])
	// opening stones for B remain, so the match goes on
	assert.Empty(s.T(), s.notifier.SentOfType(hostConn, model.EventGameOver))
	assert.Len(s.T(), s.notifier.SentOfType(hostConn, model.EventGameState), 1)
}

func (s *ManagerSuite) TestTotalCaptureWins() {
	match := s.startMatch()
	match.Board = model.Board{}
	match.Board.Set(pos(0, 0), model.CellStoneB)
	match.Board.Set(pos(0, 1), model.CellStoneA)
	s.clock.Advance(10 * time.Minute)

	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(1, 0)))

	expected := model.GameOverPayload{WinnerName: "cato", Reason: model.ReasonTotalCapture}
	assert.Equal(s.T(), expected, s.gameOver(hostConn))
	assert.Equal(s.T(), expected, s.gameOver(challengerConn))
	assert.Empty(s.T(), s.notifier.SentOfType(hostConn, model.EventGameState))
	assert.Empty(s.T(), s.manager.Rooms())
	assert.Nil(s.T(), s.currentRoom(hostConn))
	assert.Nil(s.T(), s.currentRoom(challengerConn))

	results := s.recorder.Results()
	require.Len(s.T(), results, 1)
	result := results[0]
	assert.Equal(s.T(), hostRoom, result.RoomID)
	assert.Equal(s.T(), "cato", result.WinnerName)
	assert.Equal(s.T(), "hana", result.LoserName)
	assert.False(s.T(), result.Draw)
	assert.Equal(s.T(), 1, result.Captured[model.ColorA])
	assert.Equal(s.T(), 2, result.Stones[model.ColorA])
	assert.Equal(s.T(), 0, result.Stones[model.ColorB])
	assert.Equal(s.T(), 1, result.MovesPlayed)
	assert.Equal(s.T(), s.clock.Now(), result.EndedAt)
	assert.Equal(s.T(), s.clock.Now().Add(-10*time.Minute), result.StartedAt)
}

func (s *ManagerSuite) TestTotalCaptureNeedsACapture() {
	match := s.startMatch()
	match.Board = model.Board{}
	match.Board.Set(pos(0, 0), model.CellStoneA)

	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(5, 5)))

	assert.Empty(s.T(), s.notifier.SentOfType(hostConn, model.EventGameOver))
	assert.Len(s.T(), s.manager.Rooms(), 1)
}

func (s *ManagerSuite) TestBudgetExhaustionScoresByStones() {
	match := s.startMatch()
	match.MoveBudget[model.ColorA] = 1

	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(0, 0)))

	assert.Equal(s.T(), model.GameOverPayload{WinnerName: "cato", Reason: model.ReasonMoveLimit}, s.gameOver(hostConn))
	assert.Equal(s.T(), 0, match.MoveBudget[model.ColorA])
	assert.Empty(s.T(), s.manager.Rooms())
}

func (s *ManagerSuite) TestBudgetExhaustionFavoursMoreStones() {
	match := s.startMatch()
	match.Board.Set(pos(10, 10), model.CellStoneB)
	match.Board.Set(pos(10, 11), model.CellStoneB)
	match.MoveBudget[model.ColorA] = 1

	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(0, 0)))

	assert.Equal(s.T(), model.GameOverPayload{WinnerName: "hana", Reason: model.ReasonMoveLimit}, s.gameOver(challengerConn))
}

func (s *ManagerSuite) TestBudgetExhaustionDraw() {
	match := s.startMatch()
	match.Board.Set(pos(14, 14), model.CellStoneA)
	match.CurrentTurn = model.ColorB
	match.MoveBudget[model.ColorB] = 1

	require.NoError(s.T(), s.manager.Move(hostConn, hostRoom, pos(0, 0)))

	assert.Equal(s.T(), model.GameOverPayload{WinnerName: "", Reason: model.ReasonMoveLimitDraw}, s.gameOver(hostConn))
	results := s.recorder.Results()
	require.Len(s.T(), results, 1)
	assert.True(s.T(), results[0].Draw)
	assert.Empty(s.T(), results[0].WinnerName)
	assert.Empty(s.T(), results[0].LoserName)
}

func (s *ManagerSuite) TestTotalCaptureTakesPriorityOverBudget() {
	match := s.startMatch()
	match.Board = model.Board{}
	match.Board.Set(pos(0, 0), model.CellStoneB)
	match.Board.Set(pos(0, 1), model.CellStoneA)
	match.MoveBudget[model.ColorA] = 1

	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(1, 0)))

	assert.Equal(s.T(), model.ReasonTotalCapture, s.gameOver(hostConn).Reason)
}

func (s *ManagerSuite) TestPassSwitchesTurn() {
	match := s.startMatch()

	require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))

	assert.Equal(s.T(), 1, match.Passes[model.ColorA])
	assert.Equal(s.T(), model.ColorB, match.CurrentTurn)
	assert.Equal(s.T(), model.InitialMoveBudget, match.MoveBudget[model.ColorA])
	assert.Len(s.T(), s.notifier.SentOfType(hostConn, model.EventGameState), 1)
}

func (s *ManagerSuite) TestPassOutOfTurnIsSilent() {
	match := s.startMatch()

	err := s.manager.Pass(hostConn, hostRoom)

	assert.ErrorIs(s.T(), err, model.ErrNotYourTurn)
	assert.Equal(s.T(), 0, match.Passes[model.ColorB])
	assert.Empty(s.T(), s.notifier.SentTo(hostConn))
}

func (s *ManagerSuite) TestFifthPassForfeits() {
	match := s.startMatch()

	for i := 0; i < model.PassForfeitLimit-1; i++ {
		require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))
		require.NoError(s.T(), s.manager.Pass(hostConn, hostRoom))
	}
	assert.Equal(s.T(), 4, match.Passes[model.ColorA])
	assert.Empty(s.T(), s.notifier.SentOfType(hostConn, model.EventGameOver))

	require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))

	assert.Equal(s.T(), model.GameOverPayload{WinnerName: "hana", Reason: model.ReasonPassedFive}, s.gameOver(challengerConn))
	assert.Empty(s.T(), s.manager.Rooms())
}

func (s *ManagerSuite) TestOpponentMovesKeepPassCount() {
	match := s.startMatch()

	for i := 0; i < model.PassForfeitLimit-1; i++ {
		require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))
		require.NoError(s.T(), s.manager.Move(hostConn, hostRoom, pos(0, i)))
	}
	assert.Equal(s.T(), 4, match.Passes[model.ColorA])

	require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))
	assert.Equal(s.T(), model.ReasonPassedFive, s.gameOver(hostConn).Reason)
}

func (s *ManagerSuite) TestMoveResetsMoversPassCount() {
	match := s.startMatch()

	require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))
	require.NoError(s.T(), s.manager.Pass(hostConn, hostRoom))
	require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))
	require.NoError(s.T(), s.manager.Move(hostConn, hostRoom, pos(0, 0)))
	assert.Equal(s.T(), 2, match.Passes[model.ColorA])
	assert.Equal(s.T(), 0, match.Passes[model.ColorB])

	require.NoError(s.T(), s.manager.Move(challengerConn, hostRoom, pos(14, 0)))
	assert.Equal(s.T(), 0, match.Passes[model.ColorA])

	// a fresh run of four passes is allowed again
	for i := 0; i < model.PassForfeitLimit-1; i++ {
		require.NoError(s.T(), s.manager.Pass(hostConn, hostRoom))
		require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))
	}
	assert.Equal(s.T(), 4, match.Passes[model.ColorA])
	assert.Empty(s.T(), s.notifier.SentOfType(challengerConn, model.EventGameOver))
}

func (s *ManagerSuite) TestRejectedMoveKeepsPassCount() {
	match := s.startMatch()

	require.NoError(s.T(), s.manager.Pass(challengerConn, hostRoom))
	require.NoError(s.T(), s.manager.Pass(hostConn, hostRoom))
	require.Error(s.T(), s.manager.Move(challengerConn, hostRoom, pos(6, 7)))

	assert.Equal(s.T(), 1, match.Passes[model.ColorA])
}

func (s *ManagerSuite) TestSurrenderOutOfTurn() {
	s.startMatch()

	require.NoError(s.T(), s.manager.Surrender(hostConn, hostRoom))

	assert.Equal(s.T(), model.GameOverPayload{WinnerName: "cato", Reason: model.ReasonSurrendered}, s.gameOver(hostConn))
	results := s.recorder.Results()
	require.Len(s.T(), results, 1)
	assert.Equal(s.T(), model.ReasonSurrendered, results[0].Reason)
}

func (s *ManagerSuite) TestUnboundNameIsRejected() {
	match := s.startMatch()

	assert.ErrorIs(s.T(), s.manager.Move(otherConn, hostRoom, pos(0, 0)), model.ErrNotInMatch)
	assert.ErrorIs(s.T(), s.manager.Pass(otherConn, hostRoom), model.ErrNotInMatch)
	assert.ErrorIs(s.T(), s.manager.Surrender(otherConn, hostRoom), model.ErrNotInMatch)

	assert.Empty(s.T(), s.notifier.SentTo(otherConn))
	assert.True(s.T(), match.Board.IsEmpty(pos(0, 0)))
	assert.Len(s.T(), s.manager.Rooms(), 1)
}

func (s *ManagerSuite) TestSameNameActsForBoundColor() {
	match := s.startMatch()
	s.registry.Register("cato-again", "cato")

	require.NoError(s.T(), s.manager.Move("cato-again", hostRoom, pos(3, 3)))

	assert.Equal(s.T(), model.CellStoneA, match.Board.Get(pos(3, 3)))
}

func (s *ManagerSuite) TestMatchIntentsOutsideActiveRoom() {
	s.roomIn(model.RoomStateReady)

	assert.ErrorIs(s.T(), s.manager.Move(challengerConn, hostRoom, pos(0, 0)), model.ErrInvalidTransition)
	assert.ErrorIs(s.T(), s.manager.Pass(challengerConn, hostRoom), model.ErrInvalidTransition)
	assert.ErrorIs(s.T(), s.manager.Surrender(challengerConn, hostRoom), model.ErrInvalidTransition)
	assert.ErrorIs(s.T(), s.manager.Move(challengerConn, "room_nowhere", pos(0, 0)), model.ErrRoomNotFound)
	assert.Empty(s.T(), s.notifier.SentOfType(challengerConn, model.EventInvalidMove))
}
