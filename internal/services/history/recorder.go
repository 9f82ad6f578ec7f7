// Package history archives finished matches off the dispatch goroutine.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/stonegame/internal/model"
	"github.com/mcoot/stonegame/internal/storage"
)

const (
	// DefaultQueueSize is the number of results buffered before new ones are dropped
	DefaultQueueSize = 64
	// DefaultListLimit is used when callers ask for no particular limit
	DefaultListLimit = 20
	// MaxListLimit bounds a single query
	MaxListLimit = 100

	writeTimeout = 5 * time.Second
)

// Recorder queues results and writes them to storage from its own goroutine
type Recorder struct {
	storage storage.Storage
	queue   chan model.MatchResult
	logger  *slog.Logger
}

// NewRecorder creates a Recorder. Call Run to start writing.
func NewRecorder(storage storage.Storage, queueSize int, logger *slog.Logger) *Recorder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Recorder{
		storage: storage,
		queue:   make(chan model.MatchResult, queueSize),
		logger:  logger.With(slog.String("component", "history")),
	}
}

// Record enqueues a result without blocking; a full queue drops it
func (r *Recorder) Record(result model.MatchResult) {
	select {
	case r.queue <- result:
	default:
		r.logger.Warn("history queue full, dropping result",
			slog.String("room", string(result.RoomID)))
	}
}

// Run writes queued results until ctx is cancelled, then drains what is left
func (r *Recorder) Run(ctx context.Context) {
	for {
		select {
		case result := <-r.queue:
			r.write(result)
		case <-ctx.Done():
			for {
				select {
				case result := <-r.queue:
					r.write(result)
				default:
					return
				}
			}
		}
	}
}

// Recent returns recent results, newest first. The limit is clamped to MaxListLimit.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]*model.MatchResult, error) {
	return r.storage.ListResults(ctx, ClampLimit(limit))
}

// ClampLimit applies the default and maximum page size
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

func (r *Recorder) write(result model.MatchResult) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := r.storage.SaveResult(ctx, &result); err != nil {
		r.logger.Error("failed to save result",
			slog.String("room", string(result.RoomID)),
			slog.Any("error", err))
		return
	}
	r.logger.Debug("result saved", slog.String("room", string(result.RoomID)))
}
