// Package factory wires the application together.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/simon-kyger/crewbattle/internal/dependencies/clock"
	"github.com/simon-kyger/crewbattle/internal/services/auth"
	"github.com/simon-kyger/crewbattle/internal/services/room"
	"github.com/simon-kyger/crewbattle/internal/services/session"
	"github.com/simon-kyger/crewbattle/internal/storage"
	"github.com/simon-kyger/crewbattle/internal/storage/memory"
	redisstorage "github.com/simon-kyger/crewbattle/internal/storage/redis"
	"github.com/simon-kyger/crewbattle/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage     storage.Storage
	Clock       clock.Clock
	Sessions    *session.Registry
	Rooms       *room.Controller
	AuthService *auth.Service
	Broadcaster *ws.Broadcaster
	Gateway     *ws.Gateway
	Handler     http.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger; a no-op logger is used if nil
	Logger *slog.Logger
	// StorageType selects the credential store backend ("memory" or
	// "redis"); defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if
	// StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired. A
// credential store that cannot be reached is the only unrecoverable
// condition: the error is returned before anything serves.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	sessions := session.NewRegistry()
	broadcaster := ws.NewBroadcaster(sessions, logger)
	rooms := room.NewController(broadcaster, clk, logger)
	authService := auth.New(store, clk, logger)
	gateway := ws.NewGateway(authService, sessions, rooms, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Sessions:    sessions,
		Rooms:       rooms,
		AuthService: authService,
		Broadcaster: broadcaster,
		Gateway:     gateway,
		Handler:     ws.NewRouter(gateway, logger),
	}, nil
}
