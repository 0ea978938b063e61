// Package ws is the connection gateway: it upgrades HTTP requests to
// websockets, authenticates actors and dispatches inbound events to the
// room state machine.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/simon-kyger/crewbattle/internal/model"
	"github.com/simon-kyger/crewbattle/internal/protocol"
	"github.com/simon-kyger/crewbattle/internal/services/auth"
	"github.com/simon-kyger/crewbattle/internal/services/room"
	"github.com/simon-kyger/crewbattle/internal/services/session"
)

// Gateway accepts websocket connections and routes their events
type Gateway struct {
	auth     *auth.Service
	sessions *session.Registry
	rooms    *room.Controller
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewGateway creates a gateway over the given services
func NewGateway(authService *auth.Service, sessions *session.Registry, rooms *room.Controller, logger *slog.Logger) *Gateway {
	return &Gateway{
		auth:     authService,
		sessions: sessions,
		rooms:    rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// ServeWS upgrades the request and runs the connection's pumps until it
// drops
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("upgrade failed", slog.Any("error", err))
		return
	}

	client := NewClient(conn, g.logger)
	g.logger.Info("connection opened", slog.String("conn", client.ID()))

	go client.writePump()
	client.readPump(func(env protocol.Envelope) {
		g.dispatch(r.Context(), client, env)
	})

	// Read pump returned: the peer is gone
	g.disconnect(client)
}

// disconnect runs the transport-level cleanup. Safe to call when the
// connection never authenticated.
func (g *Gateway) disconnect(client *Client) {
	if identity, ok := g.sessions.Identity(client); ok {
		g.rooms.Disconnect(identity)
		g.logger.Info("connection closed",
			slog.String("conn", client.ID()),
			slog.String("username", string(identity)))
	} else {
		g.logger.Info("connection closed", slog.String("conn", client.ID()))
	}
	g.sessions.Remove(client)
	client.Close()
}

// dispatch routes one inbound envelope. Room-mutation legality errors
// are swallowed without a client event, per the protocol contract.
func (g *Gateway) dispatch(ctx context.Context, client *Client, env protocol.Envelope) {
	switch env.Event {
	case protocol.EventInit:
		client.Send(protocol.EventLoginPage, struct{}{})

	case protocol.EventLogin:
		g.handleLogin(ctx, client, env.Data)

	case protocol.EventRegister:
		g.handleRegister(ctx, client, env.Data)

	case protocol.EventCreateGame:
		if identity, ok := g.sessions.Identity(client); ok {
			var data protocol.CreateGame
			if err := json.Unmarshal(env.Data, &data); err != nil {
				return
			}
			g.swallow(identity, env.Event, g.rooms.Create(identity, model.RoomID(data.Room), data.Priv))
		}

	case protocol.EventJoinGame:
		if identity, ok := g.sessions.Identity(client); ok {
			var data protocol.JoinGame
			if err := json.Unmarshal(env.Data, &data); err != nil {
				return
			}
			g.swallow(identity, env.Event, g.rooms.Join(identity, model.Identity(data.Selected), model.RoomID(data.Priv)))
		}

	case protocol.EventUpdateGame:
		if identity, ok := g.sessions.Identity(client); ok {
			var data protocol.UpdateGame
			if err := json.Unmarshal(env.Data, &data); err != nil {
				return
			}
			g.swallow(identity, env.Event, g.rooms.Move(identity, model.Identity(data.Selected),
				model.Container(data.Container), model.Movement(data.Movement)))
		}

	case protocol.EventStockChange:
		if identity, ok := g.sessions.Identity(client); ok {
			var data protocol.StockChange
			if err := json.Unmarshal(env.Data, &data); err != nil {
				return
			}
			g.swallow(identity, env.Event, g.rooms.StockChange(identity, data.Team1Stocks, data.Team2Stocks))
		}

	case protocol.EventResetGame:
		if identity, ok := g.sessions.Identity(client); ok {
			g.swallow(identity, env.Event, g.rooms.Reset(identity))
		}

	case protocol.EventLeaveGame:
		if identity, ok := g.sessions.Identity(client); ok {
			g.swallow(identity, env.Event, g.rooms.Leave(identity))
		}

	default:
		g.logger.Debug("unknown event", slog.String("event", env.Event))
	}
}

// handleLogin verifies credentials and binds the session. The store
// lookup runs on this connection's read goroutine, so a slow database
// stalls only this login attempt.
func (g *Gateway) handleLogin(ctx context.Context, client *Client, data json.RawMessage) {
	var creds protocol.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return
	}

	user, err := g.auth.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		client.Send(protocol.EventPassFailed, protocol.Message{Msg: loginMessage(err)})
		return
	}

	if err := g.sessions.Register(user.Username, client); err != nil {
		client.Send(protocol.EventPassFailed, protocol.Message{Msg: "User is already signed in."})
		return
	}

	g.logger.Info("login",
		slog.String("conn", client.ID()),
		slog.String("username", string(user.Username)))

	client.Send(protocol.EventLoginSuccess, protocol.LoginSuccess{
		Username: string(user.Username),
		Wins:     user.Wins,
		Losses:   user.Losses,
	})
	client.Send(protocol.EventGamesUpdate, protocol.NewRoomList(g.rooms.PublicRooms()))
}

// handleRegister creates an account. Validation failures and conflicts
// go back as verif messages; success as usercreated.
func (g *Gateway) handleRegister(ctx context.Context, client *Client, data json.RawMessage) {
	var creds protocol.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return
	}

	user, err := g.auth.Register(ctx, creds.Username, creds.Password)
	if err != nil {
		client.Send(protocol.EventVerif, protocol.Message{Msg: registerMessage(creds.Username, err)})
		return
	}

	client.Send(protocol.EventUserCreated, protocol.Message{
		Msg: fmt.Sprintf("User %s has been created.", user.Username),
	})
}

// swallow logs a rejected room operation without surfacing it to the
// client
func (g *Gateway) swallow(identity model.Identity, event string, err error) {
	if err == nil {
		return
	}
	g.logger.Debug("operation rejected",
		slog.String("event", event),
		slog.String("username", string(identity)),
		slog.String("reason", err.Error()))
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrEmptyUsername):
		return "Enter a valid username."
	case errors.Is(err, auth.ErrEmptyPassword):
		return "Enter a valid password."
	case errors.Is(err, model.ErrCredentialInvalid):
		return "Unknown user and/or password combination."
	default:
		return "DB is having issues. Please contact admin."
	}
}

func registerMessage(username string, err error) string {
	switch {
	case errors.Is(err, auth.ErrEmptyUsername):
		return "Enter a new username to register."
	case errors.Is(err, auth.ErrEmptyPassword):
		return "Enter a password."
	case errors.Is(err, auth.ErrInvalidUsername):
		return "Usernames may not contain <, > or &."
	case errors.Is(err, model.ErrCredentialConflict):
		return fmt.Sprintf("User: %s already exists.", username)
	default:
		return "DB is having issues. Please contact admin."
	}
}
