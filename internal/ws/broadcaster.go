package ws

import (
	"log/slog"

	"github.com/simon-kyger/crewbattle/internal/model"
	"github.com/simon-kyger/crewbattle/internal/protocol"
	"github.com/simon-kyger/crewbattle/internal/services/room"
	"github.com/simon-kyger/crewbattle/internal/services/session"
)

// Broadcaster pushes state to live connections through the session
// registry. Members without a session are skipped, never an error.
type Broadcaster struct {
	sessions *session.Registry
	logger   *slog.Logger
}

var _ room.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates a broadcaster over the session registry
func NewBroadcaster(sessions *session.Registry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "broadcast")),
	}
}

// RoomUpdate sends the room state to every current member
func (b *Broadcaster) RoomUpdate(r *model.Room) {
	view := protocol.NewRoomView(r)
	for _, member := range r.Members() {
		if conn, ok := b.sessions.Conn(member); ok {
			conn.Send(protocol.EventGameUpdate, view)
		}
	}
}

// RoomJoined tells one identity it has entered a room
func (b *Broadcaster) RoomJoined(identity model.Identity, r *model.Room, resettable bool) {
	conn, ok := b.sessions.Conn(identity)
	if !ok {
		return
	}
	conn.Send(protocol.EventJoinGame, protocol.Joined{
		Username:   string(identity),
		Game:       protocol.NewRoomView(r),
		Resettable: resettable,
	})
}

// StockUpdate sends the stock counters to every current member
func (b *Broadcaster) StockUpdate(r *model.Room) {
	stocks := protocol.Stocks{Team1: r.Team1Stocks, Team2: r.Team2Stocks}
	for _, member := range r.Members() {
		if conn, ok := b.sessions.Conn(member); ok {
			conn.Send(protocol.EventStockChange, stocks)
		}
	}
}

// LobbyRooms sends the public room list to every connected session
func (b *Broadcaster) LobbyRooms(rooms []*model.Room) {
	list := protocol.NewRoomList(rooms)
	for _, conn := range b.sessions.Conns() {
		conn.Send(protocol.EventGamesUpdate, list)
	}
}

// ReturnToLobby sends one identity the public room list
func (b *Broadcaster) ReturnToLobby(identity model.Identity, rooms []*model.Room) {
	if conn, ok := b.sessions.Conn(identity); ok {
		conn.Send(protocol.EventGamesUpdate, protocol.NewRoomList(rooms))
	}
}

// Notification sends one identity an informational message
func (b *Broadcaster) Notification(identity model.Identity, text string) {
	if conn, ok := b.sessions.Conn(identity); ok {
		conn.Send(protocol.EventNotification, protocol.Notification{Text: text})
	}
}
