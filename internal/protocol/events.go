// Package protocol defines the JSON wire protocol spoken over each
// websocket connection. Every frame in both directions is an Envelope.
package protocol

import (
	"encoding/json"

	"github.com/simon-kyger/crewbattle/internal/model"
)

// Inbound event names (client to server)
const (
	EventInit        = "init"
	EventLogin       = "login"
	EventRegister    = "register"
	EventCreateGame  = "creategame"
	EventJoinGame    = "joingame"
	EventUpdateGame  = "updategame"
	EventStockChange = "stockchange"
	EventResetGame   = "resetgame"
	EventLeaveGame   = "leavegame"
)

// Outbound event names (server to client)
const (
	EventLoginPage    = "loginpage"
	EventUserCreated  = "usercreated"
	EventLoginSuccess = "loginsuccess"
	EventGameUpdate   = "gameupdate"
	EventGamesUpdate  = "gamesupdate"
	EventNotification = "notification"
	EventPassFailed   = "passfailed"
	EventVerif        = "verif"
)

// Envelope wraps every message on the wire
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Credentials is the payload for login and register
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGame asks for a new room with a caller-chosen room number
type CreateGame struct {
	Room string `json:"room"`
	Priv bool   `json:"priv"`
}

// JoinGame joins either by another member's name (public shortcut) or
// by room number (private join)
type JoinGame struct {
	Selected string `json:"selected,omitempty"`
	Priv     string `json:"priv,omitempty"`
}

// UpdateGame requests moving a member between containers
type UpdateGame struct {
	Selected  string `json:"selected"`
	Container string `json:"container"`
	Movement  string `json:"movement"`
}

// StockChange sets absolute stock counts; omitted fields are untouched
type StockChange struct {
	Team1Stocks *int `json:"team1stocks,omitempty"`
	Team2Stocks *int `json:"team2stocks,omitempty"`
}

// Message is a bare human-readable message payload
type Message struct {
	Msg string `json:"msg"`
}

// Notification is a lobby/room informational text
type Notification struct {
	Text string `json:"text"`
}

// LoginSuccess is sent after a successful login
type LoginSuccess struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// Joined is sent to a player entering a room, whether by creating or
// joining it. Resettable marks the room admin, who gets reset and stock
// controls.
type Joined struct {
	Username   string   `json:"username"`
	Game       RoomView `json:"game"`
	Resettable bool     `json:"resettable"`
}

// Stocks is the payload of a stockchange broadcast
type Stocks struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// RoomView is the client-facing shape of a room
type RoomView struct {
	Admin       string   `json:"admin"`
	Room        string   `json:"room"`
	Priv        bool     `json:"priv"`
	Captains    []string `json:"captains"`
	Team1       []string `json:"team1"`
	Inbound     []string `json:"inbound"`
	Team2       []string `json:"team2"`
	Team1Stocks int      `json:"team1stocks"`
	Team2Stocks int      `json:"team2stocks"`
	Picking     string   `json:"picking"`
	Phase       bool     `json:"phase"`
}

// RoomList is the payload of a gamesupdate broadcast
type RoomList struct {
	Games []RoomView `json:"games"`
}

// NewRoomView converts a room to its wire shape. Slices are always
// non-nil so the client sees [] rather than null.
func NewRoomView(r *model.Room) RoomView {
	return RoomView{
		Admin:       string(r.Admin),
		Room:        string(r.ID),
		Priv:        r.Private,
		Captains:    identities(r.Captains),
		Team1:       identities(r.Team1),
		Inbound:     identities(r.Inbound),
		Team2:       identities(r.Team2),
		Team1Stocks: r.Team1Stocks,
		Team2Stocks: r.Team2Stocks,
		Picking:     string(r.Picking),
		Phase:       r.Phase,
	}
}

// NewRoomList converts rooms to a gamesupdate payload
func NewRoomList(rooms []*model.Room) RoomList {
	views := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, NewRoomView(r))
	}
	return RoomList{Games: views}
}

func identities(ids []model.Identity) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
