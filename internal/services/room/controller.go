// Package room owns the room store and the draft state machine. Every
// mutation is validated, applied and broadcast under a single mutex, so
// no two operations on any room interleave.
package room

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/simon-kyger/crewbattle/internal/dependencies/clock"
	"github.com/simon-kyger/crewbattle/internal/model"
)

// Notifier delivers state to live connections. Delivery is best-effort:
// members without a live session are skipped.
type Notifier interface {
	// RoomUpdate sends the room state to every current member
	RoomUpdate(room *model.Room)
	// RoomJoined tells one identity it has entered a room
	RoomJoined(identity model.Identity, room *model.Room, resettable bool)
	// StockUpdate sends the stock counters to every current member
	StockUpdate(room *model.Room)
	// LobbyRooms sends the public room list to every connected session
	LobbyRooms(rooms []*model.Room)
	// ReturnToLobby sends one identity the public room list as a
	// back-to-lobby acknowledgement
	ReturnToLobby(identity model.Identity, rooms []*model.Room)
	// Notification sends one identity an informational message
	Notification(identity model.Identity, text string)
}

// Controller is the room state machine
type Controller struct {
	mu       sync.Mutex
	store    *Store
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a room controller around an empty store
func NewController(notifier Notifier, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		store:    NewStore(),
		notifier: notifier,
		clock:    clock,
		logger:   logger.With(slog.String("component", "room")),
	}
}

// Create makes a new room with the actor as admin, alone in the inbound
// pool. Rejected if the actor is already in any room or the room number
// collides.
func (c *Controller) Create(actor model.Identity, id model.RoomID, private bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store.ByMember(actor) != nil {
		return model.ErrIllegalMove
	}

	room := model.NewRoom(actor, id, private, c.clock.Now())
	if err := c.store.Create(room); err != nil {
		return err
	}

	c.logger.Info("room created",
		slog.String("room", string(id)),
		slog.String("admin", string(actor)),
		slog.Bool("private", private))

	c.notifier.LobbyRooms(c.publicRooms())
	c.notifier.RoomJoined(actor, room, true)
	return nil
}

// Join adds the actor to a room's inbound pool. The target is resolved
// by room number (private join) or by another member's name (public
// "join this player's game" shortcut).
func (c *Controller) Join(actor model.Identity, selected model.Identity, roomID model.RoomID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store.ByMember(actor) != nil {
		return model.ErrIllegalMove
	}

	var room *model.Room
	if roomID != "" {
		room = c.store.ByID(roomID)
	} else {
		room = c.store.ByMember(selected)
	}
	if room == nil {
		return model.ErrRoomNotFound
	}

	room.Inbound = append(room.Inbound, actor)

	c.notifier.RoomJoined(actor, room, false)
	c.notifier.RoomUpdate(room)
	return nil
}

// Move relocates a member between containers. Legality depends on the
// phase; any violation is a no-op with no client-visible error, per the
// protocol contract.
func (c *Controller) Move(actor model.Identity, selected model.Identity, container model.Container, movement model.Movement) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.ByMember(actor)
	if room == nil {
		return model.ErrRoomNotFound
	}
	if movement != model.MoveLeft && movement != model.MoveRight {
		return model.ErrIllegalMove
	}

	var err error
	if room.Phase {
		err = c.movePicking(room, actor, selected, container, movement)
	} else {
		err = c.moveSetup(room, actor, selected, container, movement)
	}
	if err != nil {
		c.logger.Debug("move rejected",
			slog.String("room", string(room.ID)),
			slog.String("actor", string(actor)),
			slog.String("selected", string(selected)),
			slog.String("movement", string(movement)),
			slog.String("reason", err.Error()))
		return err
	}

	// Both teams non-empty for the first time: captains are locked in
	// and team1's captain picks first
	if !room.Phase && len(room.Team1) > 0 && len(room.Team2) > 0 {
		room.Phase = true
		room.Captains = []model.Identity{room.Team1[0], room.Team2[0]}
		room.Picking = room.Captains[0]
		c.logger.Info("picking phase started",
			slog.String("room", string(room.ID)),
			slog.String("captain1", string(room.Captains[0])),
			slog.String("captain2", string(room.Captains[1])))
	}

	c.notifier.RoomUpdate(room)
	return nil
}

// moveSetup applies a move while the admin is still assigning. Each
// team may only receive its first member here; the phase flips before a
// second assignment is possible.
func (c *Controller) moveSetup(room *model.Room, actor, selected model.Identity, container model.Container, movement model.Movement) error {
	if actor != room.Admin {
		return model.ErrUnauthorized
	}
	if !room.HasMember(selected) {
		return model.ErrIllegalMove
	}

	if movement == model.MoveLeft {
		if len(room.Team1) > 0 || container == model.ContainerTeam1 {
			return model.ErrIllegalMove
		}
		room.RemoveMember(selected)
		room.Team1 = append(room.Team1, selected)
		return nil
	}

	if len(room.Team2) > 0 || container == model.ContainerTeam2 {
		return model.ErrIllegalMove
	}
	room.RemoveMember(selected)
	room.Team2 = append(room.Team2, selected)
	return nil
}

// movePicking applies an alternating captain pick. Only the captain
// whose turn it is may move, only toward their own team, and never a
// captain or themself.
func (c *Controller) movePicking(room *model.Room, actor, selected model.Identity, container model.Container, movement model.Movement) error {
	if actor != room.Picking {
		return model.ErrUnauthorized
	}
	if room.IsCaptain(selected) || selected == actor {
		return model.ErrIllegalMove
	}
	if !room.HasMember(selected) {
		return model.ErrIllegalMove
	}

	if movement == model.MoveLeft {
		if actor != room.Captains[0] || container == model.ContainerTeam1 {
			return model.ErrIllegalMove
		}
		room.RemoveMember(selected)
		room.Team1 = append(room.Team1, selected)
	} else {
		if actor != room.Captains[1] || container == model.ContainerTeam2 {
			return model.ErrIllegalMove
		}
		room.RemoveMember(selected)
		room.Team2 = append(room.Team2, selected)
	}

	// Turn alternation is by captain position, not identity equality:
	// the opponent of whoever sits at index 0 is index 1, and anyone
	// else hands the turn to index 0
	if room.Captains[0] == actor {
		room.Picking = room.Captains[1]
	} else {
		room.Picking = room.Captains[0]
	}
	return nil
}

// StockChange sets a team's stock counter to an absolute value. Admin
// only; values are stored unchecked.
func (c *Controller) StockChange(actor model.Identity, team1Stocks, team2Stocks *int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.ByMember(actor)
	if room == nil {
		return model.ErrRoomNotFound
	}
	if actor != room.Admin {
		return model.ErrUnauthorized
	}

	if team1Stocks != nil {
		room.Team1Stocks = *team1Stocks
	}
	if team2Stocks != nil {
		room.Team2Stocks = *team2Stocks
	}

	c.notifier.StockUpdate(room)
	return nil
}

// Reset returns the room to a fresh setup state. The admin leads the
// new inbound pool, followed by former team1, team2 and inbound members
// in that order.
func (c *Controller) Reset(actor model.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.ByMember(actor)
	if room == nil {
		return model.ErrRoomNotFound
	}
	if actor != room.Admin {
		return model.ErrUnauthorized
	}

	inbound := []model.Identity{room.Admin}
	for _, list := range [][]model.Identity{room.Team1, room.Team2, room.Inbound} {
		for _, member := range list {
			if member != room.Admin {
				inbound = append(inbound, member)
			}
		}
	}

	room.Captains = []model.Identity{}
	room.Team1 = []model.Identity{}
	room.Team2 = []model.Identity{}
	room.Inbound = inbound
	room.Team1Stocks = model.DefaultStocks
	room.Team2Stocks = model.DefaultStocks
	room.Phase = false
	room.Picking = ""

	c.logger.Info("room reset", slog.String("room", string(room.ID)))

	c.notifier.RoomUpdate(room)
	return nil
}

// Leave removes the actor from its room. An admin leaving dissolves the
// room and evicts every remaining member back to the lobby.
func (c *Controller) Leave(actor model.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.ByMember(actor)
	if room == nil {
		return model.ErrRoomNotFound
	}

	if actor == room.Admin {
		evicted := make([]model.Identity, 0, len(room.Members()))
		for _, member := range room.Members() {
			if member != room.Admin {
				evicted = append(evicted, member)
			}
		}
		c.store.Remove(room.ID)

		c.logger.Info("room dissolved",
			slog.String("room", string(room.ID)),
			slog.String("admin", string(actor)),
			slog.Int("evicted", len(evicted)))

		public := c.publicRooms()
		for _, member := range evicted {
			c.notifier.Notification(member, fmt.Sprintf("%s left and the game was closed.", actor))
			c.notifier.ReturnToLobby(member, public)
		}
		c.notifier.LobbyRooms(public)
		return nil
	}

	room.RemoveMember(actor)
	c.notifier.RoomUpdate(room)
	c.notifier.ReturnToLobby(actor, c.publicRooms())
	c.notifier.LobbyRooms(c.publicRooms())
	return nil
}

// Disconnect handles a transport-level drop. If the identity is a room
// member it behaves exactly as Leave; otherwise it is a no-op.
func (c *Controller) Disconnect(identity model.Identity) {
	// ErrRoomNotFound just means nothing to clean up
	_ = c.Leave(identity)
}

// PublicRooms returns the rooms shown in the lobby listing
func (c *Controller) PublicRooms() []*model.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publicRooms()
}

// publicRooms must be called with the mutex held
func (c *Controller) publicRooms() []*model.Room {
	var rooms []*model.Room
	for _, room := range c.store.List() {
		if !room.Private {
			rooms = append(rooms, room)
		}
	}
	return rooms
}
