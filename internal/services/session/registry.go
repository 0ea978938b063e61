// Package session is the registry of live connections: the single
// source of truth for who is online. It maps identities to connection
// handles in both directions.
package session

import (
	"sync"

	"github.com/simon-kyger/crewbattle/internal/model"
)

// Conn is the connection handle side of a session. The gateway's
// websocket client satisfies it; tests use a recording fake.
type Conn interface {
	// ID uniquely identifies the underlying connection
	ID() string
	// Send enqueues an event frame, best-effort
	Send(event string, data any)
}

// Registry tracks at most one live session per identity
type Registry struct {
	mu         sync.RWMutex
	byIdentity map[model.Identity]Conn
	byConn     map[string]model.Identity
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{
		byIdentity: make(map[model.Identity]Conn),
		byConn:     make(map[string]model.Identity),
	}
}

// Register binds an identity to a connection. A second login attempt
// for an already-registered identity is rejected and the original
// session is left untouched.
func (r *Registry) Register(identity model.Identity, conn Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byIdentity[identity]; ok {
		return model.ErrAlreadySignedIn
	}

	r.byIdentity[identity] = conn
	r.byConn[conn.ID()] = identity
	return nil
}

// Identity resolves a connection to its authenticated identity
func (r *Registry) Identity(conn Conn) (model.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.byConn[conn.ID()]
	return identity, ok
}

// Conn resolves an identity to its live connection
func (r *Registry) Conn(identity model.Identity) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.byIdentity[identity]
	return conn, ok
}

// Remove deletes the session bound to the connection. No-op if the
// connection never authenticated, so disconnect cleanup is idempotent.
func (r *Registry) Remove(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.byConn[conn.ID()]
	if !ok {
		return
	}
	delete(r.byConn, conn.ID())
	delete(r.byIdentity, identity)
}

// Conns returns a snapshot of every live connection, for lobby-wide
// broadcasts
func (r *Registry) Conns() []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]Conn, 0, len(r.byIdentity))
	for _, conn := range r.byIdentity {
		conns = append(conns, conn)
	}
	return conns
}
