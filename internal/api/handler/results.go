package handler

import (
	"context"
	"net/http"

	"github.com/mcoot/stonegame/internal/api/request"
	"github.com/mcoot/stonegame/internal/api/response"
	"github.com/mcoot/stonegame/internal/model"
)

// ResultReader lists finished matches, newest first
type ResultReader interface {
	Recent(ctx context.Context, limit int) ([]*model.MatchResult, error)
}

// ResultsHandler serves the finished-match archive
type ResultsHandler struct {
	results ResultReader
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(results ResultReader) *ResultsHandler {
	return &ResultsHandler{results: results}
}

// List handles GET /api/v1/results
func (h *ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := request.ParseResultsQuery(r)
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	results, err := h.results.Recent(r.Context(), query.Limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.ResultListFromModel(results))
}
