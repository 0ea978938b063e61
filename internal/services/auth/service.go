// Package auth verifies and creates accounts against the credential
// store. It owns password hashing and username validation; live session
// tracking belongs to the session registry.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/simon-kyger/crewbattle/internal/dependencies/clock"
	"github.com/simon-kyger/crewbattle/internal/model"
	"github.com/simon-kyger/crewbattle/internal/storage"
)

// Validation errors surfaced to the client as human-readable messages
var (
	ErrEmptyUsername   = errors.New("enter a valid username")
	ErrEmptyPassword   = errors.New("enter a valid password")
	ErrInvalidUsername = errors.New("username may not contain <, > or &")
)

// usernameBlocklist are characters rejected at registration, since
// usernames are rendered verbatim by clients
const usernameBlocklist = "<>&"

// Service handles login and registration
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "auth")),
	}
}

// Login verifies a username/password pair and returns the user record.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	user, err := s.storage.GetUser(ctx, model.Identity(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrCredentialInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrCredentialInvalid
	}

	return user, nil
}

// Register creates a new account with zeroed win/loss counters.
// Usernames containing markup characters are rejected before any store
// access.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if strings.ContainsAny(username, usernameBlocklist) {
		return nil, ErrInvalidUsername
	}

	_, err := s.storage.GetUser(ctx, model.Identity(username))
	if err == nil {
		return nil, model.ErrCredentialConflict
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     model.Identity(username),
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return user, nil
}
