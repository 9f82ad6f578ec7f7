package request

import (
	"errors"
	"net/http"
	"strconv"
)

// ResultsQuery is the query string of GET /api/v1/results
type ResultsQuery struct {
	// Limit is zero when absent; the history service applies its default
	Limit int
}

// ParseResultsQuery reads and validates ?limit=
func ParseResultsQuery(r *http.Request) (ResultsQuery, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return ResultsQuery{}, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return ResultsQuery{}, errors.New("limit must be a number")
	}
	if limit < 1 {
		return ResultsQuery{}, errors.New("limit must be positive")
	}
	return ResultsQuery{Limit: limit}, nil
}
