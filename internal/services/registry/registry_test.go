package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/stonegame/internal/dependencies/mocks"
	"github.com/mcoot/stonegame/internal/model"
	"github.com/mcoot/stonegame/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	notifier *mocks.MockNotifier
	clock    *mocks.MockClock
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.notifier = mocks.NewMockNotifier()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.registry = New(s.notifier, s.clock, testutil.NopLogger())
}

func (s *RegistrySuite) lastOnline() []string {
	event, ok := s.notifier.LastBroadcast()
	s.Require().True(ok)
	s.Require().Equal(model.EventOnlinePlayers, event.Type)
	names, ok := event.Payload.([]string)
	s.Require().True(ok)
	return names
}

func (s *RegistrySuite) TestRegisterBroadcastsOnlineNames() {
	p := s.registry.Register("c1", "alice")

	assert.Equal(s.T(), model.ConnID("c1"), p.Conn)
	assert.Equal(s.T(), "alice", p.Name)
	assert.Nil(s.T(), p.CurrentRoom)
	assert.Equal(s.T(), s.clock.Now(), p.OnlineAt)
	assert.Equal(s.T(), []string{"alice"}, s.lastOnline())
}

func (s *RegistrySuite) TestNamesKeepRegistrationOrder() {
	s.registry.Register("c1", "alice")
	s.registry.Register("c2", "bob")
	s.registry.Register("c3", "carol")

	assert.Equal(s.T(), []string{"alice", "bob", "carol"}, s.lastOnline())
	assert.Equal(s.T(), 3, s.registry.Count())
}

func (s *RegistrySuite) TestReRegisterOverwritesAndClearsRoom() {
	s.registry.Register("c1", "alice")
	s.registry.Register("c2", "bob")
	s.registry.SetRoom("c1", "room_c1")

	p := s.registry.Register("c1", "alicia")

	assert.Equal(s.T(), "alicia", p.Name)
	assert.Nil(s.T(), p.CurrentRoom)
	assert.Equal(s.T(), []string{"alicia", "bob"}, s.lastOnline())
	assert.Equal(s.T(), 2, s.registry.Count())
}

func (s *RegistrySuite) TestDuplicateNamesAreAllowed() {
	s.registry.Register("c1", "sam")
	s.registry.Register("c2", "sam")

	assert.Equal(s.T(), []string{"sam", "sam"}, s.lastOnline())
}

func (s *RegistrySuite) TestLookup() {
	s.registry.Register("c1", "alice")

	p, ok := s.registry.Lookup("c1")
	require.True(s.T(), ok)
	assert.Equal(s.T(), "alice", p.Name)

	_, ok = s.registry.Lookup("missing")
	assert.False(s.T(), ok)
}

func (s *RegistrySuite) TestUnregisterRemovesAndBroadcasts() {
	s.registry.Register("c1", "alice")
	s.registry.Register("c2", "bob")

	p, ok := s.registry.Unregister("c1")

	require.True(s.T(), ok)
	assert.Equal(s.T(), "alice", p.Name)
	assert.Equal(s.T(), []string{"bob"}, s.lastOnline())
	_, ok = s.registry.Lookup("c1")
	assert.False(s.T(), ok)
}

func (s *RegistrySuite) TestUnregisterUnknownIsNoOp() {
	s.registry.Register("c1", "alice")
	before := len(s.notifier.Broadcasts())

	_, ok := s.registry.Unregister("ghost")

	assert.False(s.T(), ok)
	assert.Len(s.T(), s.notifier.Broadcasts(), before)
}

func (s *RegistrySuite) TestSetAndClearRoom() {
	s.registry.Register("c1", "alice")

	s.registry.SetRoom("c1", "room_c9")
	p, _ := s.registry.Lookup("c1")
	require.NotNil(s.T(), p.CurrentRoom)
	assert.Equal(s.T(), model.RoomID("room_c9"), *p.CurrentRoom)
	assert.True(s.T(), p.InRoom())

	s.registry.ClearRoom("c1")
	assert.Nil(s.T(), p.CurrentRoom)

	// unknown connections are ignored
	s.registry.SetRoom("ghost", "room_x")
	s.registry.ClearRoom("ghost")
}
