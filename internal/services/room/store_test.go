package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/simon-kyger/crewbattle/internal/model"
)

type StoreSuite struct {
	suite.Suite
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = NewStore()
}

func (s *StoreSuite) newRoom(admin model.Identity, id model.RoomID) *model.Room {
	return model.NewRoom(admin, id, false, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}

func (s *StoreSuite) TestCreateAndLookup() {
	r := s.newRoom("alice", "42")
	s.Require().NoError(s.store.Create(r))

	s.Same(r, s.store.ByID("42"))
	s.Same(r, s.store.ByMember("alice"))
}

func (s *StoreSuite) TestCreateDuplicateFails() {
	s.Require().NoError(s.store.Create(s.newRoom("alice", "42")))

	err := s.store.Create(s.newRoom("bob", "42"))
	s.ErrorIs(err, model.ErrDuplicateRoom)
}

func (s *StoreSuite) TestByMemberSearchesAllContainers() {
	r := s.newRoom("alice", "42")
	r.Team1 = append(r.Team1, "bob")
	r.Team2 = append(r.Team2, "carol")
	s.Require().NoError(s.store.Create(r))

	s.Same(r, s.store.ByMember("bob"))
	s.Same(r, s.store.ByMember("carol"))
	s.Nil(s.store.ByMember("ghost"))
}

func (s *StoreSuite) TestRemove() {
	s.Require().NoError(s.store.Create(s.newRoom("alice", "42")))

	s.store.Remove("42")
	s.Nil(s.store.ByID("42"))
	s.Empty(s.store.List())

	// removing twice is a no-op
	s.store.Remove("42")
}

func (s *StoreSuite) TestListPreservesCreationOrder() {
	s.Require().NoError(s.store.Create(s.newRoom("alice", "42")))
	s.Require().NoError(s.store.Create(s.newRoom("bob", "7")))
	s.Require().NoError(s.store.Create(s.newRoom("carol", "99")))

	rooms := s.store.List()
	s.Require().Len(rooms, 3)
	s.Equal(model.RoomID("42"), rooms[0].ID)
	s.Equal(model.RoomID("7"), rooms[1].ID)
	s.Equal(model.RoomID("99"), rooms[2].ID)
}
