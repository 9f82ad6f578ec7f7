package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/stonegame/internal/dependencies/mocks"
	"github.com/mcoot/stonegame/internal/storage/memory"
	"github.com/mcoot/stonegame/internal/web/ws"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The caller starts it with Start and stops it by cancelling and calling Close.
func NewTestApp() *TestApp {
	store := memory.New(memory.DefaultMaxResults)
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, ws.HandlerConfig{}, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
	}
}
