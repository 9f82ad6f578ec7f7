package mocks

import (
	"sync"

	"github.com/mcoot/stonegame/internal/model"
)

// SentEvent is an event addressed to a single connection
type SentEvent struct {
	To    model.ConnID
	Event model.Event
}

// MockNotifier records outbound events instead of delivering them
type MockNotifier struct {
	mu        sync.Mutex
	sent      []SentEvent
	broadcast []model.Event
}

// NewMockNotifier creates an empty MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Send records a directed event
func (n *MockNotifier) Send(conn model.ConnID, event model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, SentEvent{To: conn, Event: event})
}

// Broadcast records an event sent to everyone
func (n *MockNotifier) Broadcast(event model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcast = append(n.broadcast, event)
}

// SentTo returns the events sent to conn, in order
func (n *MockNotifier) SentTo(conn model.ConnID) []model.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var events []model.Event
	for _, s := range n.sent {
		if s.To == conn {
			events = append(events, s.Event)
		}
	}
	return events
}

// SentOfType returns the events of the given type sent to conn
func (n *MockNotifier) SentOfType(conn model.ConnID, eventType model.EventType) []model.Event {
	var events []model.Event
	for _, e := range n.SentTo(conn) {
		if e.Type == eventType {
			events = append(events, e)
		}
	}
	return events
}

// LastSent returns the most recent event sent to conn
func (n *MockNotifier) LastSent(conn model.ConnID) (model.Event, bool) {
	events := n.SentTo(conn)
	if len(events) == 0 {
		return model.Event{}, false
	}
	return events[len(events)-1], true
}

// Broadcasts returns every broadcast event, in order
func (n *MockNotifier) Broadcasts() []model.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Event(nil), n.broadcast...)
}

// LastBroadcast returns the most recent broadcast event
func (n *MockNotifier) LastBroadcast() (model.Event, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.broadcast) == 0 {
		return model.Event{}, false
	}
	return n.broadcast[len(n.broadcast)-1], true
}

// Reset forgets everything recorded so far
func (n *MockNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
	n.broadcast = nil
}
