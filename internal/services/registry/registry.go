package registry

import (
	"log/slog"

	"github.com/mcoot/stonegame/internal/dependencies/clock"
	"github.com/mcoot/stonegame/internal/model"
)

// Broadcaster delivers an event to every connection
type Broadcaster interface {
	Broadcast(event model.Event)
}

// Registry maps live connections to participants.
// It is not safe for concurrent use; the dispatch loop owns it.
type Registry struct {
	participants map[model.ConnID]*model.Participant
	order        []model.ConnID // registration order, for the online list
	broadcaster  Broadcaster
	clock        clock.Clock
	logger       *slog.Logger
}

// New creates an empty Registry
func New(broadcaster Broadcaster, clock clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		participants: make(map[model.ConnID]*model.Participant),
		broadcaster:  broadcaster,
		clock:        clock,
		logger:       logger.With(slog.String("component", "registry")),
	}
}

// Register creates or overwrites the participant for conn with no room,
// then broadcasts the online list
func (r *Registry) Register(conn model.ConnID, name string) *model.Participant {
	if _, ok := r.participants[conn]; !ok {
		r.order = append(r.order, conn)
	}

	p := &model.Participant{
		Conn:     conn,
		Name:     name,
		OnlineAt: r.clock.Now(),
	}
	r.participants[conn] = p

	r.logger.Info("participant online",
		slog.String("conn", string(conn)),
		slog.String("name", name),
		slog.Int("online", len(r.order)))

	r.broadcastOnline()
	return p
}

// Lookup returns the participant for conn
func (r *Registry) Lookup(conn model.ConnID) (*model.Participant, bool) {
	p, ok := r.participants[conn]
	return p, ok
}

// Unregister removes the participant for conn and re-broadcasts the online list.
// Unknown connections are a no-op.
func (r *Registry) Unregister(conn model.ConnID) (*model.Participant, bool) {
	p, ok := r.participants[conn]
	if !ok {
		return nil, false
	}

	delete(r.participants, conn)
	for i, c := range r.order {
		if c == conn {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.Info("participant offline",
		slog.String("conn", string(conn)),
		slog.String("name", p.Name),
		slog.Int("online", len(r.order)))

	r.broadcastOnline()
	return p, true
}

// SetRoom records that conn holds a seat in the given room
func (r *Registry) SetRoom(conn model.ConnID, roomID model.RoomID) {
	if p, ok := r.participants[conn]; ok {
		id := roomID
		p.CurrentRoom = &id
	}
}

// ClearRoom returns conn to the lobby
func (r *Registry) ClearRoom(conn model.ConnID) {
	if p, ok := r.participants[conn]; ok {
		p.CurrentRoom = nil
	}
}

// Names returns the online display names in registration order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, conn := range r.order {
		names = append(names, r.participants[conn].Name)
	}
	return names
}

// Count returns the number of online participants
func (r *Registry) Count() int {
	return len(r.order)
}

func (r *Registry) broadcastOnline() {
	r.broadcaster.Broadcast(model.Event{
		Type:    model.EventOnlinePlayers,
		Payload: r.Names(),
	})
}
