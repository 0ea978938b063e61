// Package memory is an in-memory credential store, used in tests and
// when running without a database.
package memory

import (
	"context"
	"sync"

	"github.com/simon-kyger/crewbattle/internal/model"
	"github.com/simon-kyger/crewbattle/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	users map[model.Identity]*model.User
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users: make(map[model.Identity]*model.User),
	}
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetUser(ctx context.Context, username model.Identity) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *Storage) Close() error {
	return nil
}
