package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/mcoot/stonegame/internal/dependencies/clock"
	"github.com/mcoot/stonegame/internal/services/dispatch"
	"github.com/mcoot/stonegame/internal/services/history"
	"github.com/mcoot/stonegame/internal/services/registry"
	"github.com/mcoot/stonegame/internal/services/session"
	"github.com/mcoot/stonegame/internal/storage"
	"github.com/mcoot/stonegame/internal/storage/memory"
	redisstorage "github.com/mcoot/stonegame/internal/storage/redis"
	"github.com/mcoot/stonegame/internal/web/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Hub       *ws.Hub
	Registry  *registry.Registry
	Manager   *session.Manager
	Loop      *dispatch.Loop
	History   *history.Recorder
	WebSocket *ws.Handler

	logger *slog.Logger
	wg     sync.WaitGroup
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MaxResults caps the in-memory archive (optional)
	MaxResults int
	// WebSocket holds the /ws endpoint settings
	WebSocket ws.HandlerConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(cfg.MaxResults)
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

	return newWithDependencies(store, clock.New(), cfg.WebSocket, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, wsCfg ws.HandlerConfig, logger *slog.Logger) *App {
	hub := ws.NewHub(logger)
	recorder := history.NewRecorder(store, history.DefaultQueueSize, logger)
	reg := registry.New(hub, clk, logger)
	manager := session.NewManager(hub, reg, recorder, clk, logger)
	loop := dispatch.NewLoop(reg, manager, dispatch.DefaultQueueSize, logger)

	return &App{
		Storage:   store,
		Clock:     clk,
		Hub:       hub,
		Registry:  reg,
		Manager:   manager,
		Loop:      loop,
		History:   recorder,
		WebSocket: ws.NewHandler(hub, loop, wsCfg, logger),
		logger:    logger,
	}
}

// Start launches the hub, the dispatch loop and the history writer.
// They run until ctx is cancelled; call Close afterwards.
func (a *App) Start(ctx context.Context) {
	a.wg.Add(3)
	go func() {
		defer a.wg.Done()
		a.Hub.Run()
	}()
	go func() {
		defer a.wg.Done()
		if err := a.Loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("dispatch loop failed", slog.Any("error", err))
		}
	}()
	go func() {
		defer a.wg.Done()
		a.History.Run(ctx)
	}()
}

// Close disconnects every client, waits for the background goroutines and
// releases storage. The context passed to Start must already be cancelled.
func (a *App) Close() error {
	a.Hub.Close()
	a.wg.Wait()

	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
