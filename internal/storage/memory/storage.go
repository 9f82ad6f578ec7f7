package memory

import (
	"context"
	"sync"

	"github.com/mcoot/stonegame/internal/model"
	"github.com/mcoot/stonegame/internal/storage"
)

// DefaultMaxResults bounds the archive when no cap is configured
const DefaultMaxResults = 200

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	results    []*model.MatchResult // newest first
	maxResults int
}

// New creates a new in-memory storage instance keeping at most maxResults entries
func New(maxResults int) *Storage {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Storage{maxResults: maxResults}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveResult(ctx context.Context, result *model.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *result
	s.results = append([]*model.MatchResult{&stored}, s.results...)
	if len(s.results) > s.maxResults {
		s.results = s.results[:s.maxResults]
	}
	return nil
}

func (s *Storage) ListResults(ctx context.Context, limit int) ([]*model.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.results) {
		limit = len(s.results)
	}
	out := make([]*model.MatchResult, 0, limit)
	for _, r := range s.results[:limit] {
		c := *r
		out = append(out, &c)
	}
	return out, nil
}
