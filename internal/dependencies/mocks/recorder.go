package mocks

import (
	"sync"

	"github.com/mcoot/stonegame/internal/model"
)

// MockRecorder keeps finished match results in memory
type MockRecorder struct {
	mu      sync.Mutex
	results []model.MatchResult
}

// NewMockRecorder creates an empty MockRecorder
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

// Record stores a result
func (r *MockRecorder) Record(result model.MatchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

// Results returns every recorded result in order
func (r *MockRecorder) Results() []model.MatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.MatchResult(nil), r.results...)
}
