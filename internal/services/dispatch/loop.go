// Package dispatch serializes every intent through a single goroutine that owns
// the connection registry and the session manager.
package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/stonegame/internal/model"
	"github.com/mcoot/stonegame/internal/services/registry"
	"github.com/mcoot/stonegame/internal/services/session"
)

// DefaultQueueSize is the intent buffer used when none is configured
const DefaultQueueSize = 256

// ErrLoopStopped is returned once the loop is no longer running
var ErrLoopStopped = errors.New("dispatch loop stopped")

// Snapshot is a read-only view of lobby state
type Snapshot struct {
	Rooms   []model.RoomSummary
	Players []string
	Online  int
}

// command is either an intent or a read; sharing one channel keeps them ordered
type command struct {
	intent model.Intent
	read   func()
}

// Loop is the single owner of lobby and match state
type Loop struct {
	registry *registry.Registry
	manager  *session.Manager
	commands chan command
	done     chan struct{}
	logger   *slog.Logger
}

// NewLoop creates a Loop. Call Run to start processing.
func NewLoop(registry *registry.Registry, manager *session.Manager, queueSize int, logger *slog.Logger) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Loop{
		registry: registry,
		manager:  manager,
		commands: make(chan command, queueSize),
		done:     make(chan struct{}),
		logger:   logger.With(slog.String("component", "dispatch")),
	}
}

// Run processes commands until ctx is cancelled. It must be called exactly once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	l.logger.Info("dispatch loop started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("dispatch loop stopped")
			return ctx.Err()
		case cmd := <-l.commands:
			if cmd.read != nil {
				cmd.read()
				continue
			}
			if err := l.handle(cmd.intent); err != nil {
				l.logger.Debug("intent dropped",
					slog.String("type", string(cmd.intent.Type)),
					slog.String("conn", string(cmd.intent.Conn)),
					slog.Any("error", err))
			}
		}
	}
}

// Submit queues an intent. Intents from one caller are handled in submission order.
func (l *Loop) Submit(ctx context.Context, intent model.Intent) error {
	select {
	case l.commands <- command{intent: intent}:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the room list and online names as of every intent submitted before it
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := l.read(ctx, func() {
		snap = Snapshot{
			Rooms:   l.manager.Rooms(),
			Players: l.registry.Names(),
			Online:  l.registry.Count(),
		}
	})
	return snap, err
}

// Room returns a full copy of one room, match included
func (l *Loop) Room(ctx context.Context, id model.RoomID) (model.Room, error) {
	var (
		room    model.Room
		roomErr error
	)
	if err := l.read(ctx, func() { room, roomErr = l.manager.Room(id) }); err != nil {
		return model.Room{}, err
	}
	return room, roomErr
}

// read runs fn on the loop goroutine and waits for it to finish
func (l *Loop) read(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	cmd := command{read: func() {
		fn()
		close(finished)
	}}

	select {
	case l.commands <- cmd:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) handle(intent model.Intent) error {
	conn := intent.Conn

	switch intent.Type {
	case model.IntentOnline:
		// a connection re-announcing itself gives up whatever seat it held
		if p, ok := l.registry.Lookup(conn); ok && p.InRoom() {
			if err := l.manager.Depart(conn); err != nil {
				l.logger.Debug("depart before re-register failed", slog.Any("error", err))
			}
		}
		l.registry.Register(conn, intent.Name)
		return nil
	case model.IntentListRooms:
		l.manager.ListRooms(conn)
		return nil
	case model.IntentCreateRoom:
		_, err := l.manager.CreateRoom(conn, intent.Name, intent.Title)
		return err
	case model.IntentJoinRoom:
		return l.manager.JoinRoom(conn, intent.RoomID, intent.Name)
	case model.IntentReady:
		return l.manager.Ready(conn, intent.RoomID)
	case model.IntentStart:
		return l.manager.Start(conn, intent.RoomID)
	case model.IntentMove:
		return l.manager.Move(conn, intent.RoomID, intent.Pos)
	case model.IntentPass:
		return l.manager.Pass(conn, intent.RoomID)
	case model.IntentSurrender:
		return l.manager.Surrender(conn, intent.RoomID)
	case model.IntentLeave:
		return l.manager.Leave(conn, intent.RoomID)
	case model.IntentDisconnect:
		err := l.manager.Depart(conn)
		l.registry.Unregister(conn)
		if errors.Is(err, model.ErrNotInRoom) {
			return nil
		}
		return err
	default:
		return model.ErrUnknownIntent
	}
}
