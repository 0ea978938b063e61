package storage

import (
	"context"

	"github.com/simon-kyger/crewbattle/internal/model"
)

// Storage is the credential store: the only persistent collaborator in
// the system. Rooms and sessions live in memory and are deliberately
// not persisted.
type Storage interface {
	// GetUser returns the user record for a username, or
	// model.ErrUserNotFound if no such account exists
	GetUser(ctx context.Context, username model.Identity) (*model.User, error)

	// SaveUser creates or overwrites a user record
	SaveUser(ctx context.Context, user *model.User) error

	// Close releases any underlying connections
	Close() error
}
