package rules

import "github.com/mcoot/stonegame/internal/model"

// Group is a maximal set of same-colored stones connected orthogonally
type Group struct {
	Stone     model.Cell
	Stones    []model.Position
	Liberties int // distinct empty cells adjacent to any stone in the group
}

// GroupAt flood-fills the group containing pos.
// An empty or off-board position yields an empty group.
func GroupAt(board *model.Board, pos model.Position) Group {
	stone := board.Get(pos)
	if !pos.InBounds() || stone == model.CellEmpty {
		return Group{}
	}

	var visited, liberty [model.BoardSize][model.BoardSize]bool
	group := Group{Stone: stone}

	stack := []model.Position{pos}
	visited[pos.Row][pos.Col] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group.Stones = append(group.Stones, cur)

		for _, n := range cur.Neighbors() {
			switch board.Get(n) {
			case model.CellEmpty:
				if !liberty[n.Row][n.Col] {
					liberty[n.Row][n.Col] = true
					group.Liberties++
				}
			case stone:
				if !visited[n.Row][n.Col] {
					visited[n.Row][n.Col] = true
					stack = append(stack, n)
				}
			}
		}
	}

	return group
}

// removeGroup clears every stone of the group and returns how many were removed
func removeGroup(board *model.Board, group Group) int {
	for _, pos := range group.Stones {
		board.Set(pos, model.CellEmpty)
	}
	return len(group.Stones)
}
