package ui

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocmmi/internal/errors"
)

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input maps to 400", errors.InvalidInput("bad token"), 400},
		{"not found maps to 404", errors.NotFound("assessment"), 404},
		{"conflict maps to 409", errors.Conflict("name taken"), 409},
		{"database errors map to 500", errors.DatabaseError("query failed", nil), 500},
		{"plain errors map to 500", assertError{}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

type assertError struct{}

func (assertError) Error() string { return "boom" }

func TestParseIDParam(t *testing.T) {
	_, err := parseIDParam("not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	id, err := parseIDParam("4f9c31f4-14b2-4f7e-a9cc-3a1f0b6f2d58")
	require.NoError(t, err)
	assert.Equal(t, "4f9c31f4-14b2-4f7e-a9cc-3a1f0b6f2d58", id.String())
}
