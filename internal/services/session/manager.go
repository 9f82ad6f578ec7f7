// Package session owns rooms and drives them from creation to termination.
// A Manager is not safe for concurrent use; the dispatch loop serializes every call.
package session

import (
	"log/slog"

	"github.com/mcoot/stonegame/internal/dependencies/clock"
	"github.com/mcoot/stonegame/internal/model"
)

// Notifier delivers events to connections
type Notifier interface {
	Send(conn model.ConnID, event model.Event)
	Broadcast(event model.Event)
}

// Participants is the view of the connection registry the manager needs
type Participants interface {
	Lookup(conn model.ConnID) (*model.Participant, bool)
	SetRoom(conn model.ConnID, roomID model.RoomID)
	ClearRoom(conn model.ConnID)
}

// ResultRecorder archives finished matches
type ResultRecorder interface {
	Record(result model.MatchResult)
}

// Manager validates lobby and room transitions and runs matches
type Manager struct {
	rooms        map[model.RoomID]*model.Room
	order        []model.RoomID // creation order, for the room list
	notifier     Notifier
	participants Participants
	recorder     ResultRecorder
	clock        clock.Clock
	logger       *slog.Logger
}

// NewManager creates a Manager with no rooms
func NewManager(
	notifier Notifier,
	participants Participants,
	recorder ResultRecorder,
	clock clock.Clock,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		rooms:        make(map[model.RoomID]*model.Room),
		notifier:     notifier,
		participants: participants,
		recorder:     recorder,
		clock:        clock,
		logger:       logger.With(slog.String("component", "session")),
	}
}

// Rooms returns summaries of every room in creation order
func (m *Manager) Rooms() []model.RoomSummary {
	summaries := make([]model.RoomSummary, 0, len(m.order))
	for _, id := range m.order {
		summaries = append(summaries, m.rooms[id].Summary())
	}
	return summaries
}

// Room returns a snapshot of a room
func (m *Manager) Room(id model.RoomID) (model.Room, error) {
	room, ok := m.rooms[id]
	if !ok {
		return model.Room{}, model.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

// ListRooms sends the room list to the requester only
func (m *Manager) ListRooms(conn model.ConnID) {
	m.notifier.Send(conn, m.roomListEvent())
}

// CreateRoom opens a room hosted by conn. An empty host name falls back to the
// participant's registered name.
func (m *Manager) CreateRoom(conn model.ConnID, hostName, title string) (model.RoomID, error) {
	p, ok := m.participants.Lookup(conn)
	if !ok {
		return "", model.ErrParticipantNotFound
	}
	if p.InRoom() {
		return "", model.ErrAlreadyInRoom
	}

	id := model.RoomIDFor(conn)
	if _, exists := m.rooms[id]; exists {
		return "", model.ErrAlreadyInRoom
	}
	if hostName == "" {
		hostName = p.Name
	}

	m.rooms[id] = &model.Room{
		ID:        id,
		Title:     title,
		HostName:  hostName,
		HostConn:  conn,
		CreatedAt: m.clock.Now(),
	}
	m.order = append(m.order, id)
	m.participants.SetRoom(conn, id)

	m.logger.Info("room created",
		slog.String("room", string(id)),
		slog.String("host", hostName))

	m.broadcastRoomList()
	return id, nil
}

// JoinRoom seats conn as the challenger of an empty room
func (m *Manager) JoinRoom(conn model.ConnID, roomID model.RoomID, playerName string) error {
	p, ok := m.participants.Lookup(conn)
	if !ok {
		return model.ErrParticipantNotFound
	}
	if p.InRoom() {
		return model.ErrAlreadyInRoom
	}

	room, ok := m.rooms[roomID]
	if !ok {
		return model.ErrRoomNotFound
	}
	if room.HostConn == conn {
		return model.ErrAlreadyInRoom
	}
	if room.State() != model.RoomStateEmpty {
		return model.ErrRoomFull
	}
	if playerName == "" {
		playerName = p.Name
	}

	room.ChallengerName = playerName
	room.ChallengerConn = conn
	m.participants.SetRoom(conn, roomID)

	m.logger.Info("challenger joined",
		slog.String("room", string(roomID)),
		slog.String("challenger", playerName))

	snapshot := room.Snapshot()
	m.notifier.Send(room.HostConn, model.Event{Type: model.EventPlayerJoined, Payload: snapshot})
	m.notifier.Send(conn, model.Event{Type: model.EventJoinedRoom, Payload: snapshot})
	m.broadcastRoomList()
	return nil
}

// Ready marks the challenger ready
func (m *Manager) Ready(conn model.ConnID, roomID model.RoomID) error {
	room, ok := m.rooms[roomID]
	if !ok {
		return model.ErrRoomNotFound
	}
	if conn == "" || room.ChallengerConn != conn {
		return model.ErrNotChallenger
	}
	if room.State() != model.RoomStateWaiting {
		return model.ErrInvalidTransition
	}

	room.ChallengerReady = true

	m.notifier.Send(room.HostConn, model.Event{Type: model.EventOpponentReady, Payload: room.Snapshot()})
	m.broadcastRoomList()
	return nil
}

// Start begins the match; only the host of a ready room may do this
func (m *Manager) Start(conn model.ConnID, roomID model.RoomID) error {
	room, ok := m.rooms[roomID]
	if !ok {
		return model.ErrRoomNotFound
	}
	if room.HostConn != conn {
		return model.ErrNotHost
	}
	if room.State() != model.RoomStateReady {
		return model.ErrInvalidTransition
	}

	room.Match = model.NewMatch(room.HostName, room.ChallengerName, m.clock.Now())
	room.Started = true

	m.logger.Info("match started",
		slog.String("room", string(roomID)),
		slog.String("host", room.HostName),
		slog.String("challenger", room.ChallengerName))

	m.sendToMembers(room, model.Event{Type: model.EventGameStarted, Payload: room.Snapshot()})
	m.broadcastRoomList()
	return nil
}

// Leave removes conn from its room. An empty roomID means the participant's current room.
// The leaver is always redirected to the lobby.
func (m *Manager) Leave(conn model.ConnID, roomID model.RoomID) error {
	room, err := m.memberRoom(conn, roomID)
	if err != nil {
		return err
	}

	m.depart(room, conn)
	m.notifier.Send(conn, model.Event{Type: model.EventRedirectToLobby, Payload: model.RedirectPayload{}})
	return nil
}

// Depart handles a closed connection. Connections without a room are a no-op.
func (m *Manager) Depart(conn model.ConnID) error {
	room, err := m.memberRoom(conn, "")
	if err != nil {
		return err
	}

	m.depart(room, conn)
	return nil
}

func (m *Manager) memberRoom(conn model.ConnID, roomID model.RoomID) (*model.Room, error) {
	if roomID != "" {
		room, ok := m.rooms[roomID]
		if !ok {
			return nil, model.ErrRoomNotFound
		}
		if !room.IsMember(conn) {
			return nil, model.ErrNotInRoom
		}
		return room, nil
	}

	for _, id := range m.order {
		if room := m.rooms[id]; room.IsMember(conn) {
			return room, nil
		}
	}
	return nil, model.ErrNotInRoom
}

// depart discards the room. A started match is awarded to whoever remains.
func (m *Manager) depart(room *model.Room, conn model.ConnID) {
	remaining, _, hasOpponent := room.Opposite(conn)

	if room.Started {
		winner, _ := room.SeatColor(remaining)
		m.finish(room, outcome{winner: winner, reason: model.ReasonOpponentLeft})
		return
	}

	m.logger.Info("room abandoned",
		slog.String("room", string(room.ID)),
		slog.String("conn", string(conn)))

	m.deleteRoom(room)
	if hasOpponent {
		m.notifier.Send(remaining, model.Event{Type: model.EventRedirectToLobby, Payload: model.RedirectPayload{}})
	}
	m.broadcastRoomList()
}

func (m *Manager) deleteRoom(room *model.Room) {
	delete(m.rooms, room.ID)
	for i, id := range m.order {
		if id == room.ID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	for _, member := range room.Members() {
		m.participants.ClearRoom(member)
	}
}

func (m *Manager) sendToMembers(room *model.Room, event model.Event) {
	for _, member := range room.Members() {
		m.notifier.Send(member, event)
	}
}

func (m *Manager) roomListEvent() model.Event {
	return model.Event{Type: model.EventRoomList, Payload: m.Rooms()}
}

func (m *Manager) broadcastRoomList() {
	m.notifier.Broadcast(m.roomListEvent())
}
