package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/simon-kyger/crewbattle/internal/model"
	"github.com/simon-kyger/crewbattle/internal/protocol"
	"github.com/simon-kyger/crewbattle/internal/services/session"
	"github.com/simon-kyger/crewbattle/internal/testutil"
)

// recordedFrame is one Send call captured by a fake connection
type recordedFrame struct {
	event string
	data  any
}

type fakeConn struct {
	id     string
	frames []recordedFrame
}

var _ session.Conn = (*fakeConn)(nil)

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(event string, data any) {
	c.frames = append(c.frames, recordedFrame{event: event, data: data})
}

func (c *fakeConn) events() []string {
	var names []string
	for _, f := range c.frames {
		names = append(names, f.event)
	}
	return names
}

type BroadcasterSuite struct {
	suite.Suite
	sessions    *session.Registry
	broadcaster *Broadcaster
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

func (s *BroadcasterSuite) SetupTest() {
	s.sessions = session.NewRegistry()
	s.broadcaster = NewBroadcaster(s.sessions, testutil.NopLogger())
}

func (s *BroadcasterSuite) connect(identity model.Identity) *fakeConn {
	conn := &fakeConn{id: "conn-" + string(identity)}
	s.Require().NoError(s.sessions.Register(identity, conn))
	return conn
}

func (s *BroadcasterSuite) testRoom() *model.Room {
	r := model.NewRoom("alice", "42", false, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	r.Team1 = append(r.Team1, "bob")
	return r
}

func (s *BroadcasterSuite) TestRoomUpdateReachesEveryMember() {
	alice := s.connect("alice")
	bob := s.connect("bob")
	outsider := s.connect("carol")

	s.broadcaster.RoomUpdate(s.testRoom())

	s.Equal([]string{protocol.EventGameUpdate}, alice.events())
	s.Equal([]string{protocol.EventGameUpdate}, bob.events())
	s.Empty(outsider.events())
}

func (s *BroadcasterSuite) TestRoomUpdateSkipsStaleSessions() {
	alice := s.connect("alice")
	// bob is a room member but never signed in

	s.broadcaster.RoomUpdate(s.testRoom())

	s.Len(alice.frames, 1)
}

func (s *BroadcasterSuite) TestRoomUpdatePayloadShape() {
	alice := s.connect("alice")

	s.broadcaster.RoomUpdate(s.testRoom())

	s.Require().Len(alice.frames, 1)
	view, ok := alice.frames[0].data.(protocol.RoomView)
	s.Require().True(ok)
	s.Equal("alice", view.Admin)
	s.Equal("42", view.Room)
	s.Equal([]string{"bob"}, view.Team1)
	s.Equal([]string{"alice"}, view.Inbound)
	s.NotNil(view.Team2)
	s.NotNil(view.Captains)
}

func (s *BroadcasterSuite) TestRoomJoinedMarksAdminResettable() {
	alice := s.connect("alice")

	s.broadcaster.RoomJoined("alice", s.testRoom(), true)

	s.Require().Len(alice.frames, 1)
	joined, ok := alice.frames[0].data.(protocol.Joined)
	s.Require().True(ok)
	s.True(joined.Resettable)
	s.Equal("alice", joined.Username)
}

func (s *BroadcasterSuite) TestStockUpdateCarriesBothCounters() {
	bob := s.connect("bob")
	r := s.testRoom()
	r.Team1Stocks = 7
	r.Team2Stocks = -1

	s.broadcaster.StockUpdate(r)

	s.Require().Len(bob.frames, 1)
	stocks, ok := bob.frames[0].data.(protocol.Stocks)
	s.Require().True(ok)
	s.Equal(7, stocks.Team1)
	s.Equal(-1, stocks.Team2)
}

func (s *BroadcasterSuite) TestLobbyRoomsReachesEverySession() {
	alice := s.connect("alice")
	carol := s.connect("carol")

	s.broadcaster.LobbyRooms([]*model.Room{s.testRoom()})

	s.Equal([]string{protocol.EventGamesUpdate}, alice.events())
	s.Equal([]string{protocol.EventGamesUpdate}, carol.events())
}

func (s *BroadcasterSuite) TestNotificationTargetsOneIdentity() {
	bob := s.connect("bob")
	carol := s.connect("carol")

	s.broadcaster.Notification("bob", "alice left and the game was closed.")

	s.Require().Len(bob.frames, 1)
	note, ok := bob.frames[0].data.(protocol.Notification)
	s.Require().True(ok)
	s.Equal("alice left and the game was closed.", note.Text)
	s.Empty(carol.frames)
}
