package storage

import (
	"context"

	"github.com/mcoot/stonegame/internal/model"
)

// Storage archives finished match results. Live rooms and matches are never stored.
type Storage interface {
	// SaveResult appends a finished match
	SaveResult(ctx context.Context, result *model.MatchResult) error
	// ListResults returns up to limit results, newest first
	ListResults(ctx context.Context, limit int) ([]*model.MatchResult, error)
}
