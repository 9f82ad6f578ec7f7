package model

// BoardSize is the fixed board dimension
const BoardSize = 15

// Cell is the content of a single intersection
type Cell int8

const (
	CellEmpty  Cell = 0
	CellStoneA Cell = 1
	CellStoneB Cell = 2
)

// Color identifies one of the two sides of a match
type Color int8

const (
	ColorA Color = 1 // bound to the challenger, moves first
	ColorB Color = 2 // bound to the host
)

// Opponent returns the other color
func (c Color) Opponent() Color {
	if c == ColorA {
		return ColorB
	}
	return ColorA
}

// Stone returns the cell value for a stone of this color
func (c Color) Stone() Cell {
	return Cell(c)
}

// Valid reports whether c is ColorA or ColorB
func (c Color) Valid() bool {
	return c == ColorA || c == ColorB
}

func (c Color) String() string {
	switch c {
	case ColorA:
		return "A"
	case ColorB:
		return "B"
	default:
		return "?"
	}
}

// Position identifies an intersection on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// InBounds returns true if the position lies on the board
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Neighbors returns the orthogonally adjacent positions that lie on the board
func (p Position) Neighbors() []Position {
	candidates := [4]Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
	neighbors := make([]Position, 0, len(candidates))
	for _, n := range candidates {
		if n.InBounds() {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Board is a 15x15 grid stored row-major: Board[row][col].
// It is an array, so assignment copies the whole grid.
type Board [BoardSize][BoardSize]Cell

// OpeningBoard returns the fixed starting position: StoneA directly above and
// below the center point, StoneB directly left and right of it
func OpeningBoard() Board {
	var b Board
	center := BoardSize / 2
	b[center-1][center] = CellStoneA
	b[center+1][center] = CellStoneA
	b[center][center-1] = CellStoneB
	b[center][center+1] = CellStoneB
	return b
}

// Get returns the cell at the given position, or CellEmpty if out of bounds
func (b *Board) Get(pos Position) Cell {
	if !pos.InBounds() {
		return CellEmpty
	}
	return b[pos.Row][pos.Col]
}

// Set places a cell value at the given position
func (b *Board) Set(pos Position, cell Cell) {
	if pos.InBounds() {
		b[pos.Row][pos.Col] = cell
	}
}

// IsEmpty returns true if the cell at the given position is empty
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == CellEmpty
}

// CountStones returns how many cells hold the given value
func (b *Board) CountStones(cell Cell) int {
	count := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col] == cell {
				count++
			}
		}
	}
	return count
}
