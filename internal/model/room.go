package model

import "time"

// RoomID is the caller-supplied room number, unique among active rooms
type RoomID string

// Container names the list a room member currently sits in
type Container string

const (
	ContainerTeam1   Container = "team1"
	ContainerInbound Container = "inbound"
	ContainerTeam2   Container = "team2"
)

// Movement is the direction of a draft move
type Movement string

const (
	MoveLeft  Movement = "left"  // toward team1
	MoveRight Movement = "right" // toward team2
)

// DefaultStocks is the starting stock count for both teams
const DefaultStocks = 10

// Room is one active crew battle draft. Membership lists hold usernames
// in insertion order; insertion order is pick order. A member belongs to
// exactly one of Team1, Team2 or Inbound.
type Room struct {
	Admin   Identity
	ID      RoomID
	Private bool

	Captains []Identity // [team1 captain, team2 captain]; empty until Phase
	Team1    []Identity
	Team2    []Identity
	Inbound  []Identity

	Team1Stocks int
	Team2Stocks int

	// Phase is false during setup (admin assigns freely) and true once
	// both teams are non-empty and captains alternate picks. It never
	// flips back.
	Phase   bool
	Picking Identity // whose turn it is; meaningful only when Phase

	CreatedAt time.Time
}

// NewRoom creates a fresh room with the admin alone in the inbound pool
func NewRoom(admin Identity, id RoomID, private bool, now time.Time) *Room {
	return &Room{
		Admin:       admin,
		ID:          id,
		Private:     private,
		Captains:    []Identity{},
		Team1:       []Identity{},
		Team2:       []Identity{},
		Inbound:     []Identity{admin},
		Team1Stocks: DefaultStocks,
		Team2Stocks: DefaultStocks,
		CreatedAt:   now,
	}
}

// Members returns every identity in the room: inbound, team1 and team2
func (r *Room) Members() []Identity {
	members := make([]Identity, 0, len(r.Inbound)+len(r.Team1)+len(r.Team2))
	members = append(members, r.Inbound...)
	members = append(members, r.Team1...)
	members = append(members, r.Team2...)
	return members
}

// HasMember reports whether the identity is anywhere in the room
func (r *Room) HasMember(id Identity) bool {
	return r.Find(id) != ""
}

// Find returns the container currently holding the identity, or "" if
// the identity is not a room member
func (r *Room) Find(id Identity) Container {
	if contains(r.Team1, id) {
		return ContainerTeam1
	}
	if contains(r.Team2, id) {
		return ContainerTeam2
	}
	if contains(r.Inbound, id) {
		return ContainerInbound
	}
	return ""
}

// IsCaptain reports whether the identity is one of the room's captains
func (r *Room) IsCaptain(id Identity) bool {
	return contains(r.Captains, id)
}

// RemoveMember strips the identity from whichever container holds it.
// Returns false if the identity was not a member.
func (r *Room) RemoveMember(id Identity) bool {
	switch r.Find(id) {
	case ContainerTeam1:
		r.Team1 = remove(r.Team1, id)
	case ContainerTeam2:
		r.Team2 = remove(r.Team2, id)
	case ContainerInbound:
		r.Inbound = remove(r.Inbound, id)
	default:
		return false
	}
	return true
}

func contains(ids []Identity, id Identity) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []Identity, id Identity) []Identity {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
