package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/stonegame/internal/model"
	"github.com/mcoot/stonegame/internal/services/dispatch"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"room not found", model.ErrRoomNotFound, http.StatusNotFound, CodeRoomNotFound},
		{"wrapped room not found", fmt.Errorf("lookup: %w", model.ErrRoomNotFound), http.StatusNotFound, CodeRoomNotFound},
		{"participant not found", model.ErrParticipantNotFound, http.StatusNotFound, CodeParticipantNotFound},
		{"loop stopped", dispatch.ErrLoopStopped, http.StatusServiceUnavailable, CodeUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, CodeUnavailable},
		{"invalid request", NewInvalidRequestError("limit must be a number"), http.StatusBadRequest, CodeInvalidRequest},
		{"not found", NewNotFoundError(), http.StatusNotFound, CodeNotFound},
		{"unknown", errors.New("something odd"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}
