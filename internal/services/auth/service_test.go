package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/simon-kyger/crewbattle/internal/dependencies/clock"
	"github.com/simon-kyger/crewbattle/internal/model"
	"github.com/simon-kyger/crewbattle/internal/storage/memory"
	"github.com/simon-kyger/crewbattle/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	clk := clock.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, clk, testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterCreatesUser() {
	user, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	s.Equal(model.Identity("alice"), user.Username)
	s.Zero(user.Wins)
	s.Zero(user.Losses)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")))

	stored, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.Username, stored.Username)
}

func (s *ServiceSuite) TestRegisterRejectsEmptyFields() {
	_, err := s.service.Register(s.ctx, "", "hunter2")
	s.ErrorIs(err, ErrEmptyUsername)

	_, err = s.service.Register(s.ctx, "alice", "")
	s.ErrorIs(err, ErrEmptyPassword)
}

func (s *ServiceSuite) TestRegisterRejectsMarkupUsernameWithoutStoreWrite() {
	for _, username := range []string{"<admin>", "a&b", "x>y"} {
		_, err := s.service.Register(s.ctx, username, "hunter2")
		s.ErrorIs(err, ErrInvalidUsername)

		_, err = s.storage.GetUser(s.ctx, model.Identity(username))
		s.ErrorIs(err, model.ErrUserNotFound)
	}
}

func (s *ServiceSuite) TestRegisterRejectsDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "other")
	s.ErrorIs(err, model.ErrCredentialConflict)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	user, err := s.service.Login(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	s.Equal(model.Identity("alice"), user.Username)
}

func (s *ServiceSuite) TestLoginRejectsEmptyFields() {
	_, err := s.service.Login(s.ctx, "", "hunter2")
	s.ErrorIs(err, ErrEmptyUsername)

	_, err = s.service.Login(s.ctx, "alice", "")
	s.ErrorIs(err, ErrEmptyPassword)
}

func (s *ServiceSuite) TestLoginUnknownUserAndBadPasswordIndistinguishable() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	_, unknownErr := s.service.Login(s.ctx, "nobody", "hunter2")
	_, badPassErr := s.service.Login(s.ctx, "alice", "wrong")

	s.ErrorIs(unknownErr, model.ErrCredentialInvalid)
	s.ErrorIs(badPassErr, model.ErrCredentialInvalid)
}
