package model

import "time"

const (
	// InitialMoveBudget is the number of moves each color may make before forced scoring
	InitialMoveBudget = 100
	// PassForfeitLimit is the cumulative pass count at which the passer forfeits
	PassForfeitLimit = 5
)

// Match is the state of a game in progress.
// The JSON shape is what clients render.
type Match struct {
	Board       Board            `json:"boardState"`
	CurrentTurn Color            `json:"currentPlayer"`
	Captured    map[Color]int    `json:"capturedStones"`
	MoveBudget  map[Color]int    `json:"moveCounts"`
	Passes      map[Color]int    `json:"passes"`
	KoPoint     *Position        `json:"koPoint"` // never set, ko is not enforced
	PlayerNames map[Color]string `json:"playerNames"`
	MovesPlayed int              `json:"movesPlayed"`
	StartedAt   time.Time        `json:"startedAt"`
}

// NewMatch creates a match in the opening position.
// The challenger plays ColorA and moves first; the host plays ColorB.
func NewMatch(hostName, challengerName string, startedAt time.Time) *Match {
	return &Match{
		Board:       OpeningBoard(),
		CurrentTurn: ColorA,
		Captured:    map[Color]int{ColorA: 0, ColorB: 0},
		MoveBudget:  map[Color]int{ColorA: InitialMoveBudget, ColorB: InitialMoveBudget},
		Passes:      map[Color]int{ColorA: 0, ColorB: 0},
		PlayerNames: map[Color]string{ColorA: challengerName, ColorB: hostName},
		StartedAt:   startedAt,
	}
}

// ColorOf resolves a display name to its bound color.
// Two participants sharing a name both resolve to the first match; this is not guarded.
func (m *Match) ColorOf(name string) (Color, bool) {
	switch name {
	case m.PlayerNames[ColorA]:
		return ColorA, true
	case m.PlayerNames[ColorB]:
		return ColorB, true
	default:
		return 0, false
	}
}

// NameOf returns the display name bound to a color
func (m *Match) NameOf(c Color) string {
	return m.PlayerNames[c]
}

// StoneCount returns the number of stones of the given color on the board
func (m *Match) StoneCount(c Color) int {
	return m.Board.CountStones(c.Stone())
}

// BudgetExhausted returns true once either color has no moves left
func (m *Match) BudgetExhausted() bool {
	return m.MoveBudget[ColorA] <= 0 || m.MoveBudget[ColorB] <= 0
}

// MatchResult is the archived outcome of a finished match
type MatchResult struct {
	RoomID         RoomID        `json:"roomId"`
	HostName       string        `json:"hostName"`
	ChallengerName string        `json:"challengerName"`
	WinnerName     string        `json:"winnerName"` // empty on a draw
	LoserName      string        `json:"loserName"`
	Draw           bool          `json:"draw"`
	Reason         string        `json:"reason"`
	Captured       map[Color]int `json:"capturedStones"`
	Stones         map[Color]int `json:"stones"`
	MovesPlayed    int           `json:"movesPlayed"`
	StartedAt      time.Time     `json:"startedAt"`
	EndedAt        time.Time     `json:"endedAt"`
}

// Clone returns a deep copy that shares no maps with m
func (m *Match) Clone() *Match {
	if m == nil {
		return nil
	}
	c := *m
	c.Captured = cloneCounts(m.Captured)
	c.MoveBudget = cloneCounts(m.MoveBudget)
	c.Passes = cloneCounts(m.Passes)
	c.PlayerNames = make(map[Color]string, len(m.PlayerNames))
	for k, v := range m.PlayerNames {
		c.PlayerNames[k] = v
	}
	if m.KoPoint != nil {
		p := *m.KoPoint
		c.KoPoint = &p
	}
	return &c
}

func cloneCounts(src map[Color]int) map[Color]int {
	dst := make(map[Color]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
