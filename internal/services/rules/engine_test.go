package rules

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/stonegame/internal/model"
)

type EngineSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// createBoard builds a board from row strings: 'A' and 'B' are stones,
// anything else is empty. Missing rows and columns are empty.
func (s *EngineSuite) createBoard(rows ...string) model.Board {
	var board model.Board
	for row, line := range rows {
		for col, ch := range line {
			pos := model.Position{Row: row, Col: col}
			switch ch {
			case 'A':
				board.Set(pos, model.CellStoneA)
			case 'B':
				board.Set(pos, model.CellStoneB)
			}
		}
	}
	return board
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

// Placement tests

func (s *EngineSuite) TestPlaceOnEmptyBoard() {
	var board model.Board

	result := ApplyMove(board, model.ColorA, pos(7, 7))

	s.True(result.Accepted())
	s.Equal(0, result.Captured)
	s.Equal(model.CellStoneA, result.Board.Get(pos(7, 7)))
	s.Equal(1, result.Board.CountStones(model.CellStoneA))
	s.True(board.IsEmpty(pos(7, 7)), "input board must not change")
}

func (s *EngineSuite) TestFirstMoveFromOpeningPosition() {
	board := model.OpeningBoard()

	result := ApplyMove(board, model.ColorA, pos(0, 0))

	s.True(result.Accepted())
	s.Equal(3, result.Board.CountStones(model.CellStoneA))
	s.Equal(2, result.Board.CountStones(model.CellStoneB))
}

func (s *EngineSuite) TestOccupiedCellsAreRejected() {
	board := model.OpeningBoard()
	occupied := []model.Position{pos(6, 7), pos(8, 7), pos(7, 6), pos(7, 8)}

	for _, p := range occupied {
		for _, color := range []model.Color{model.ColorA, model.ColorB} {
			result := ApplyMove(board, color, p)
			s.Equal(RejectedOccupied, result.Outcome, "position %v color %v", p, color)
			s.Equal("occupied", result.Outcome.Reason())
			s.Equal(board, result.Board)
			s.Equal(0, result.Captured)
		}
	}
}

func (s *EngineSuite) TestOffBoardIsRejected() {
	var board model.Board

	for _, p := range []model.Position{pos(-1, 0), pos(0, -1), pos(15, 3), pos(3, 15)} {
		result := ApplyMove(board, model.ColorB, p)
		s.Equal(RejectedOffBoard, result.Outcome)
		s.Equal(board, result.Board)
	}
}

// Capture tests

func (s *EngineSuite) TestCaptureSurroundedSingleStone() {
	board := s.createBoard(
		"...............",
		"...............",
		"...............",
		"...............",
		".....A.........",
		"....AB.........",
		"...............",
	)

	result := ApplyMove(board, model.ColorA, pos(5, 6))
	s.True(result.Accepted())
	s.Equal(0, result.Captured)

	result = ApplyMove(result.Board, model.ColorA, pos(6, 5))

	s.True(result.Accepted())
	s.Equal(1, result.Captured)
	s.True(result.Board.IsEmpty(pos(5, 5)))
	s.Equal(0, result.Board.CountStones(model.CellStoneB))
	s.Equal(4, result.Board.CountStones(model.CellStoneA))
}

func (s *EngineSuite) TestCaptureInCorner() {
	board := s.createBoard(
		"BA",
	)

	result := ApplyMove(board, model.ColorA, pos(1, 0))

	s.True(result.Accepted())
	s.Equal(1, result.Captured)
	s.True(result.Board.IsEmpty(pos(0, 0)))
}

func (s *EngineSuite) TestCaptureMultiStoneGroup() {
	board := s.createBoard(
		"BB",
		"AA",
	)

	result := ApplyMove(board, model.ColorA, pos(0, 2))

	s.True(result.Accepted())
	s.Equal(2, result.Captured)
	s.True(result.Board.IsEmpty(pos(0, 0)))
	s.True(result.Board.IsEmpty(pos(0, 1)))
}

func (s *EngineSuite) TestCaptureTwoSeparateGroups() {
	board := s.createBoard(
		"B.BA",
		"ABA.",
	)

	result := ApplyMove(board, model.ColorA, pos(0, 1))

	// (0,0) and (0,2) lose their last liberty; (1,1) keeps (2,1)
	s.True(result.Accepted())
	s.Equal(2, result.Captured)
	s.Equal(model.CellEmpty, result.Board.Get(pos(0, 0)))
	s.Equal(model.CellEmpty, result.Board.Get(pos(0, 2)))
	s.Equal(model.CellStoneB, result.Board.Get(pos(1, 1)))
}

func (s *EngineSuite) TestGroupTouchedTwiceIsCountedOnce() {
	board := s.createBoard(
		".BA",
		"BBA",
		"AA.",
	)

	result := ApplyMove(board, model.ColorA, pos(0, 0))

	s.True(result.Accepted())
	s.Equal(3, result.Captured)
	s.Equal(0, result.Board.CountStones(model.CellStoneB))
}

func (s *EngineSuite) TestOnlyAdjacentGroupsAreCaptured() {
	// A at (0,0) already has no liberties, but B's move does not touch it
	board := s.createBoard(
		"AB",
		"B.",
	)

	result := ApplyMove(board, model.ColorB, pos(1, 1))

	s.True(result.Accepted())
	s.Equal(0, result.Captured)
	s.Equal(model.CellStoneA, result.Board.Get(pos(0, 0)))
	s.Equal(3, result.Board.CountStones(model.CellStoneB))
}

// Suicide tests

func (s *EngineSuite) TestSuicideSingleStoneIsRejected() {
	board := s.createBoard(
		".B",
		"B.",
	)

	result := ApplyMove(board, model.ColorA, pos(0, 0))

	s.Equal(RejectedSuicide, result.Outcome)
	s.Equal("suicide move", result.Outcome.Reason())
	s.Equal(board, result.Board)
}

func (s *EngineSuite) TestSuicideOfGroupIsRejected() {
	board := s.createBoard(
		"A.B",
		"BB.",
	)

	result := ApplyMove(board, model.ColorA, pos(0, 1))

	s.Equal(RejectedSuicide, result.Outcome)
	s.Equal(model.CellStoneA, board.Get(pos(0, 0)))
	s.True(board.IsEmpty(pos(0, 1)))
}

func (s *EngineSuite) TestCaptureTakesPriorityOverSuicide() {
	board := s.createBoard(
		".BA",
		"BA.",
	)

	result := ApplyMove(board, model.ColorA, pos(0, 0))

	s.True(result.Accepted())
	s.Equal(1, result.Captured)
	s.True(result.Board.IsEmpty(pos(0, 1)))
	s.Equal(model.CellStoneB, result.Board.Get(pos(1, 0)))
}

// Liberty tests

func (s *EngineSuite) TestLibertiesOfSingleStones() {
	tests := []struct {
		name      string
		pos       model.Position
		liberties int
	}{
		{name: "center", pos: pos(7, 7), liberties: 4},
		{name: "edge", pos: pos(0, 7), liberties: 3},
		{name: "corner", pos: pos(14, 14), liberties: 2},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var board model.Board
			board.Set(tt.pos, model.CellStoneA)

			group := GroupAt(&board, tt.pos)

			s.Len(group.Stones, 1)
			s.Equal(tt.liberties, group.Liberties)
		})
	}
}

func (s *EngineSuite) TestLibertiesOfShapeCountSharedCellsOnce() {
	// L-shape: (0,0) (1,0) (1,1); shared liberty (0,1) touches two stones
	board := s.createBoard(
		"A..",
		"AA.",
		"...",
	)

	group := GroupAt(&board, pos(0, 0))

	s.Len(group.Stones, 3)
	// (0,1), (2,0), (2,1), (1,2)
	s.Equal(4, group.Liberties)
}

func (s *EngineSuite) TestLibertiesOfFullEdgeChain() {
	var board model.Board
	for col := 0; col < model.BoardSize; col++ {
		board.Set(pos(0, col), model.CellStoneB)
	}

	group := GroupAt(&board, pos(0, 5))
	s.Len(group.Stones, model.BoardSize)
	s.Equal(model.BoardSize, group.Liberties)

	for col := 0; col < model.BoardSize; col++ {
		board.Set(pos(1, col), model.CellStoneA)
	}
	group = GroupAt(&board, pos(0, 14))
	s.Equal(0, group.Liberties)
}

func (s *EngineSuite) TestGroupAtEmptyCell() {
	var board model.Board

	group := GroupAt(&board, pos(3, 3))

	s.Empty(group.Stones)
	s.Equal(0, group.Liberties)
}

// Properties over generated boards

func (s *EngineSuite) TestRandomBoardsNeverMutateInput() {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		var board model.Board
		for row := 0; row < model.BoardSize; row++ {
			for col := 0; col < model.BoardSize; col++ {
				board[row][col] = model.Cell(rng.Intn(3))
			}
		}
		before := board
		color := model.Color(rng.Intn(2) + 1)
		p := pos(rng.Intn(model.BoardSize), rng.Intn(model.BoardSize))

		result := ApplyMove(board, color, p)

		s.Equal(before, board)
		if before.Get(p) != model.CellEmpty {
			s.Equal(RejectedOccupied, result.Outcome)
		}
		if !result.Accepted() {
			s.Equal(before, result.Board)
			continue
		}
		opponent := color.Opponent().Stone()
		s.Equal(before.CountStones(opponent)-result.Captured, result.Board.CountStones(opponent))
		s.Equal(color.Stone(), result.Board.Get(p))
		s.Positive(GroupAt(&result.Board, p).Liberties)
	}
}

func (s *EngineSuite) TestScore() {
	board := model.OpeningBoard()
	board.Set(pos(0, 0), model.CellStoneA)

	a, b := Score(&board)

	s.Equal(3, a)
	s.Equal(2, b)
}
