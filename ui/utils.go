package ui

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"gocmmi/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to do but note it
		return
	}
}

// respondError translates AppError codes into HTTP statuses
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeConflict:
		status = http.StatusConflict
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// parseIDParam parses a {id} route parameter as a UUID
func parseIDParam(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.InvalidInput("invalid id: must be a UUID")
	}
	return id, nil
}

// decodeBody decodes a JSON request body into v
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.InvalidInput("invalid JSON request body")
	}
	return nil
}
