package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return newOutputTo(format, os.Stdout, os.Stderr)
}

func newOutputTo(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case RoomList:
		o.printRoomList(v)
	case PlayerList:
		o.printPlayerList(v)
	case ResultList:
		o.printResultList(v)
	case GameState:
		o.printGameState(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Room response type (matches API)
type Room struct {
	ID              string `json:"id"`
	Title           string `json:"title,omitempty"`
	Host            string `json:"host"`
	Challenger      string `json:"challenger,omitempty"`
	ChallengerReady bool   `json:"challenger_ready"`
	Started         bool   `json:"started"`
	State           string `json:"state"`
}

// RoomList response type
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// PlayerList response type
type PlayerList struct {
	Players []string `json:"players"`
	Count   int      `json:"count"`
}

// Result response type
type Result struct {
	RoomID         string    `json:"room_id"`
	Host           string    `json:"host"`
	Challenger     string    `json:"challenger"`
	Winner         string    `json:"winner,omitempty"`
	Loser          string    `json:"loser,omitempty"`
	Draw           bool      `json:"draw"`
	Reason         string    `json:"reason"`
	CapturedByHost int       `json:"captured_by_host"`
	CapturedByChal int       `json:"captured_by_challenger"`
	HostStones     int       `json:"host_stones"`
	ChalStones     int       `json:"challenger_stones"`
	MovesPlayed    int       `json:"moves_played"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
}

// ResultList response type
type ResultList struct {
	Results []Result `json:"results"`
}

// GameState is the match snapshot carried by game_started and update_game_state
type GameState struct {
	Board         [][]int           `json:"boardState"`
	CurrentPlayer int               `json:"currentPlayer"`
	Captured      map[string]int    `json:"capturedStones"`
	MoveCounts    map[string]int    `json:"moveCounts"`
	Passes        map[string]int    `json:"passes"`
	PlayerNames   map[string]string `json:"playerNames"`
	MovesPlayed   int               `json:"movesPlayed"`
}

// HealthResult response type
type HealthResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

func (o *Output) printRoom(r Room) {
	_, _ = fmt.Fprintf(o.w, "Room: %s\n", r.ID)
	if r.Title != "" {
		_, _ = fmt.Fprintf(o.w, "Title: %s\n", r.Title)
	}
	_, _ = fmt.Fprintf(o.w, "State: %s\n", r.State)
	_, _ = fmt.Fprintf(o.w, "Host: %s\n", r.Host)
	if r.Challenger != "" {
		ready := ""
		if r.ChallengerReady {
			ready = " [ready]"
		}
		_, _ = fmt.Fprintf(o.w, "Challenger: %s%s\n", r.Challenger, ready)
	}
}

func (o *Output) printRoomList(l RoomList) {
	if len(l.Rooms) == 0 {
		_, _ = fmt.Fprintln(o.w, "No open rooms")
		return
	}
	_, _ = fmt.Fprintf(o.w, "Rooms (%d):\n", len(l.Rooms))
	for _, r := range l.Rooms {
		players := r.Host
		if r.Challenger != "" {
			players += " vs " + r.Challenger
		}
		title := ""
		if r.Title != "" {
			title = fmt.Sprintf(" %q", r.Title)
		}
		_, _ = fmt.Fprintf(o.w, "  - %s%s: %s (%s)\n", r.ID, title, players, r.State)
	}
}

func (o *Output) printPlayerList(p PlayerList) {
	_, _ = fmt.Fprintf(o.w, "Online (%d): %s\n", p.Count, strings.Join(p.Players, ", "))
}

func (o *Output) printResultList(l ResultList) {
	if len(l.Results) == 0 {
		_, _ = fmt.Fprintln(o.w, "No finished matches")
		return
	}
	for _, r := range l.Results {
		outcome := "draw"
		if !r.Draw {
			outcome = r.Winner + " won"
		}
		_, _ = fmt.Fprintf(o.w, "%s  %s vs %s: %s (%s), %d moves\n",
			r.EndedAt.Format(time.DateTime), r.Host, r.Challenger, outcome, r.Reason, r.MovesPlayed)
	}
}

// Colors as numbered on the wire: 1 moves first and belongs to the challenger
const (
	wireColorA = "1"
	wireColorB = "2"
)

func (o *Output) printGameState(g GameState) {
	o.printBoard(g.Board)

	turn := wireColorA
	if g.CurrentPlayer == 2 {
		turn = wireColorB
	}
	_, _ = fmt.Fprintf(o.w, "X %s: captured %d, %d moves left, %d passes\n",
		g.PlayerNames[wireColorA], g.Captured[wireColorA], g.MoveCounts[wireColorA], g.Passes[wireColorA])
	_, _ = fmt.Fprintf(o.w, "O %s: captured %d, %d moves left, %d passes\n",
		g.PlayerNames[wireColorB], g.Captured[wireColorB], g.MoveCounts[wireColorB], g.Passes[wireColorB])
	_, _ = fmt.Fprintf(o.w, "To move: %s\n", g.PlayerNames[turn])
}

func (o *Output) printBoard(cells [][]int) {
	if len(cells) == 0 {
		return
	}

	size := len(cells)

	// Print column headers
	_, _ = fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		_, _ = fmt.Fprintf(o.w, "%2d ", col)
	}
	_, _ = fmt.Fprintln(o.w)

	// Print rows
	for row := 0; row < size; row++ {
		_, _ = fmt.Fprintf(o.w, "%2d |", row)
		for col := 0; col < len(cells[row]); col++ {
			switch cells[row][col] {
			case 1:
				_, _ = fmt.Fprint(o.w, " X ")
			case 2:
				_, _ = fmt.Fprint(o.w, " O ")
			default:
				_, _ = fmt.Fprint(o.w, " . ")
			}
		}
		_, _ = fmt.Fprintln(o.w, "|")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s (%dms)\n", h.Status, h.LatencyMS)
}
