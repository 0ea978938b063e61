package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/simon-kyger/crewbattle/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) user(name string) *model.User {
	return &model.User{
		Username:     model.Identity(name),
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndGetUser() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, s.user("alice")))

	got, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.Identity("alice"), got.Username)
	s.Equal("$2a$10$hash", got.PasswordHash)
}

func (s *StorageSuite) TestGetUnknownUser() {
	_, err := s.storage.GetUser(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestSaveOverwrites() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, s.user("alice")))

	updated := s.user("alice")
	updated.Wins = 3
	s.Require().NoError(s.storage.SaveUser(s.ctx, updated))

	got, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(3, got.Wins)
}

func (s *StorageSuite) TestReturnedUserIsACopy() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, s.user("alice")))

	got, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	got.Wins = 99

	again, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Zero(again.Wins)
}
