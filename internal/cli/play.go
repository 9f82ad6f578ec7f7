package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// errQuit ends an interactive session
var errQuit = errors.New("quit")

const playHelp = `Commands:
  rooms                 refresh the room list
  create [title]        open a room and wait for a challenger
  join <room-id>        take the challenger seat
  ready                 mark yourself ready (challenger)
  start                 start the match (host)
  move <row> <col>      place a stone
  pass                  pass your turn
  surrender             concede the match
  leave                 leave the room
  help                  show this help
  quit                  disconnect`

func newPlayCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Connect to the lobby and play interactively",
		Long: `Open a WebSocket connection, announce yourself to the lobby and read
commands from stdin. Server events are printed as they arrive.

` + playHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, name, os.Stdin, NewOutput(cfg.Output))
		},
	}

	cmd.Flags().StringVar(&name, "name", cfg.Name, "Display name (env: STONECTL_NAME)")

	return cmd
}

// frame is the {"type","payload"} envelope used in both directions
type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newFrame(msgType string, payload any) (frame, error) {
	if payload == nil {
		return frame{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return frame{}, err
	}
	return frame{Type: msgType, Payload: raw}, nil
}

// playSession tracks what the server has told us about our seat
type playSession struct {
	out *Output

	mu     sync.Mutex
	connID string
	roomID string
}

func (s *playSession) room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *playSession) setRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = id
}

func runPlay(ctx context.Context, name string, in io.Reader, out *Output) error {
	wsURL, err := client.WebSocketURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	s := &playSession{out: out}

	online, _ := newFrame("player_online", map[string]string{"name": name})
	if err := conn.WriteJSON(online); err != nil {
		return fmt.Errorf("announce failed: %w", err)
	}

	readErr := make(chan error, 1)
	go func() { readErr <- s.readLoop(conn) }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.closeGracefully(conn)
			return nil
		case err := <-readErr:
			return err
		case line, ok := <-lines:
			if !ok {
				s.closeGracefully(conn)
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			f, err := parseCommand(line, name, s.room())
			if errors.Is(err, errQuit) {
				s.closeGracefully(conn)
				return nil
			}
			if err != nil {
				out.PrintError(err)
				continue
			}
			if f.Type == "" {
				out.PrintMessage(playHelp)
				continue
			}

			if err := conn.WriteJSON(f); err != nil {
				return fmt.Errorf("send failed: %w", err)
			}
			// the server names rooms after the creating connection
			if f.Type == "create_room" {
				s.mu.Lock()
				s.roomID = "room_" + s.connID
				s.mu.Unlock()
			}
		}
	}
}

func (s *playSession) closeGracefully(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

func (s *playSession) readLoop(conn *websocket.Conn) error {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}
		s.handle(f)
	}
}

// handle updates the session from a server event and prints it
func (s *playSession) handle(f frame) {
	var room struct {
		ID        string     `json:"id"`
		GameState *GameState `json:"gameState"`
	}

	switch f.Type {
	case "connected":
		var p struct {
			ConnectionID string `json:"connectionId"`
		}
		if json.Unmarshal(f.Payload, &p) == nil {
			s.mu.Lock()
			s.connID = p.ConnectionID
			s.mu.Unlock()
		}
	case "joined_room", "player_joined", "opponent_ready", "game_started":
		if json.Unmarshal(f.Payload, &room) == nil && room.ID != "" {
			s.setRoom(room.ID)
		}
	case "redirect_to_lobby", "game_over":
		s.setRoom("")
	}

	if s.out.format == "json" {
		data, _ := json.Marshal(f)
		_, _ = fmt.Fprintln(s.out.w, string(data))
		return
	}

	_, _ = fmt.Fprintf(s.out.w, "[%s] %s\n", time.Now().Format(time.TimeOnly), describeEvent(f))
	switch f.Type {
	case "update_game_state":
		var state GameState
		if json.Unmarshal(f.Payload, &state) == nil {
			s.out.printGameState(state)
		}
	case "game_started":
		if room.GameState != nil {
			s.out.printGameState(*room.GameState)
		}
	}
}

// parseCommand turns an input line into an outbound frame. An empty frame means help.
func parseCommand(line, name, roomID string) (frame, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return frame{}, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	needRoom := func() (map[string]string, error) {
		id := roomID
		if len(args) > 0 {
			id = args[0]
		}
		if id == "" {
			return nil, fmt.Errorf("%s: not in a room", cmd)
		}
		return map[string]string{"roomId": id}, nil
	}

	switch cmd {
	case "help", "?":
		return frame{}, nil
	case "quit", "exit":
		return frame{}, errQuit
	case "rooms":
		return newFrame("get_rooms", nil)
	case "create":
		return newFrame("create_room", map[string]string{
			"hostName": name,
			"title":    strings.Join(args, " "),
		})
	case "join":
		if len(args) != 1 {
			return frame{}, errors.New("usage: join <room-id>")
		}
		return newFrame("join_room", map[string]string{"roomId": args[0], "playerName": name})
	case "ready", "start", "pass", "surrender":
		p, err := needRoom()
		if err != nil {
			return frame{}, err
		}
		types := map[string]string{
			"ready":     "player_ready",
			"start":     "start_game",
			"pass":      "pass_turn",
			"surrender": "surrender",
		}
		return newFrame(types[cmd], p)
	case "move":
		if len(args) != 2 {
			return frame{}, errors.New("usage: move <row> <col>")
		}
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return frame{}, fmt.Errorf("invalid row %q", args[0])
		}
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return frame{}, fmt.Errorf("invalid col %q", args[1])
		}
		if roomID == "" {
			return frame{}, errors.New("move: not in a room")
		}
		return newFrame("make_move", map[string]any{"roomId": roomID, "r": row, "c": col})
	case "leave":
		if roomID == "" {
			return newFrame("leave_room", nil)
		}
		return newFrame("leave_room", map[string]string{"roomId": roomID})
	default:
		return frame{}, fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

// describeEvent renders a one-line summary of a server event
func describeEvent(f frame) string {
	switch f.Type {
	case "connected":
		var p struct {
			ConnectionID string `json:"connectionId"`
		}
		_ = json.Unmarshal(f.Payload, &p)
		return "connected as " + p.ConnectionID
	case "update_online_players":
		var names []string
		_ = json.Unmarshal(f.Payload, &names)
		return fmt.Sprintf("online (%d): %s", len(names), strings.Join(names, ", "))
	case "update_room_list":
		var rooms []struct {
			ID    string `json:"id"`
			Host  string `json:"host"`
			State string `json:"state"`
		}
		_ = json.Unmarshal(f.Payload, &rooms)
		parts := make([]string, 0, len(rooms))
		for _, r := range rooms {
			parts = append(parts, fmt.Sprintf("%s (%s, %s)", r.ID, r.Host, r.State))
		}
		if len(parts) == 0 {
			return "rooms: none"
		}
		return "rooms: " + strings.Join(parts, "; ")
	case "player_joined", "joined_room", "opponent_ready":
		var r struct {
			ID         string `json:"id"`
			Host       string `json:"host"`
			Challenger string `json:"challenger"`
		}
		_ = json.Unmarshal(f.Payload, &r)
		return fmt.Sprintf("%s: %s, host %s, challenger %s", strings.ReplaceAll(f.Type, "_", " "), r.ID, r.Host, r.Challenger)
	case "game_started":
		return "match started"
	case "update_game_state":
		return "board updated"
	case "invalid_move":
		var p struct {
			Reason string `json:"reason"`
		}
		_ = json.Unmarshal(f.Payload, &p)
		return "invalid move: " + p.Reason
	case "game_over":
		var p struct {
			WinnerName string `json:"winnerName"`
			Reason     string `json:"reason"`
		}
		_ = json.Unmarshal(f.Payload, &p)
		if p.WinnerName == "" {
			return "game over, draw: " + p.Reason
		}
		return fmt.Sprintf("game over, %s wins: %s", p.WinnerName, p.Reason)
	case "redirect_to_lobby":
		return "back in the lobby"
	default:
		return f.Type + " " + string(f.Payload)
	}
}
