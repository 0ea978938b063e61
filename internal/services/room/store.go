package room

import "github.com/simon-kyger/crewbattle/internal/model"

// Store is the ordered collection of active rooms, keyed by room
// number. It is not safe for concurrent use on its own; the controller
// serializes all access behind its mutex.
type Store struct {
	order []*model.Room
	byID  map[model.RoomID]*model.Room
}

// NewStore creates an empty room store
func NewStore() *Store {
	return &Store{
		byID: make(map[model.RoomID]*model.Room),
	}
}

// Create adds a room, failing if its room number is already in use
func (s *Store) Create(room *model.Room) error {
	if _, ok := s.byID[room.ID]; ok {
		return model.ErrDuplicateRoom
	}
	s.byID[room.ID] = room
	s.order = append(s.order, room)
	return nil
}

// ByID returns the room with the given room number, or nil
func (s *Store) ByID(id model.RoomID) *model.Room {
	return s.byID[id]
}

// ByMember returns the room whose inbound/team1/team2 contains the
// identity, or nil. At most one room matches: an identity belongs to at
// most one room overall.
func (s *Store) ByMember(identity model.Identity) *model.Room {
	for _, room := range s.order {
		if room.HasMember(identity) {
			return room
		}
	}
	return nil
}

// Remove deletes a room by room number; no-op if absent
func (s *Store) Remove(id model.RoomID) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, room := range s.order {
		if room.ID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// List returns all active rooms in creation order
func (s *Store) List() []*model.Room {
	rooms := make([]*model.Room, len(s.order))
	copy(rooms, s.order)
	return rooms
}
